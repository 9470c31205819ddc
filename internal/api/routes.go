package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/targets", s.targetsHandler)
		api.POST("/compose", s.composeHandler)
		api.GET("/qr", s.qrHandler)
	}
}
