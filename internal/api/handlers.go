package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/shotframe/internal/config"
	imagepkg "github.com/youruser/shotframe/internal/image"
	"github.com/youruser/shotframe/internal/target"
)

const maxQRSize = 4096

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) targetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": len(s.targets), "targets": s.targets})
}

// composeHandler renders the multipart "image" field onto the named target.
func (s *Server) composeHandler(c *gin.Context) {
	name := c.Query("target")
	spec, ok := target.Lookup(s.targets, name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown target " + strconv.Quote(name)})
		return
	}

	bg := s.background
	if v := c.Query("background"); v != "" {
		parsed, err := config.ParseColor(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		bg = parsed
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image field"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	src, err := imagepkg.Decode(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := imagepkg.Compose(src, spec, bg)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, imagepkg.ErrDegenerateScale), errors.Is(err, imagepkg.ErrScaleTooLarge):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, imagepkg.ErrInvalidSource):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	b, err := imagepkg.PNGBytes(out)
	if err != nil {
		s.logger.Error("encode compose output", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// qr endpoint returns a PNG of a QR for "text", defaulting to the store URL.
// Modules are drawn in the background color unless branded=false.
func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = s.storeURL
	}
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := s.qrSize
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxQRSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and " + strconv.Itoa(maxQRSize)})
			return
		}
		size = n
	}
	branded := true
	if v := c.Query("branded"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "branded must be a boolean"})
			return
		}
		branded = parsed
	}
	var b []byte
	var err error
	if branded {
		b, err = imagepkg.GenerateBrandedQRPNG(text, size, s.background)
	} else {
		b, err = imagepkg.GenerateQRPNG(text, size)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
