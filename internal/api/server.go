// Package api serves the canvas compositor over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/youruser/shotframe/internal/config"
	"github.com/youruser/shotframe/internal/logging"
	"github.com/youruser/shotframe/internal/target"
)

const requestIDHeader = "X-Request-ID"

// Server holds the read-only state shared by all handlers.
type Server struct {
	targets    []target.Spec
	background color.NRGBA
	storeURL   string
	qrSize     int
	logger     *zap.Logger
}

func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	return &Server{
		targets:    cfg.Targets,
		background: bg,
		storeURL:   cfg.StoreURL,
		qrSize:     cfg.QRSize,
		logger:     logging.Component(logger, "api"),
	}, nil
}

// Router builds the gin engine with request IDs, access logging and recovery.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), s.accessLog(), gin.Recovery())
	RegisterRoutes(r, s)
	return r
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
