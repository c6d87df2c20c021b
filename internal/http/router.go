package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/ondrasimku/video-publish-service/internal/http/handler"
)

func NewRouter(processor handler.UploadProcessor, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	healthHandler := handler.NewHealthHandler()
	uploadHandler := handler.NewUploadHandler(processor, logger)

	router.GET("/healthz", healthHandler.Health)
	router.POST("/upload", uploadHandler.Upload)

	return router
}
