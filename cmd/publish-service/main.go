package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ondrasimku/video-publish-service/internal/asset"
	"github.com/ondrasimku/video-publish-service/internal/config"
	httphandler "github.com/ondrasimku/video-publish-service/internal/http"
	"github.com/ondrasimku/video-publish-service/internal/log"
	"github.com/ondrasimku/video-publish-service/internal/seo"
	"github.com/ondrasimku/video-publish-service/internal/storage/local"
	"github.com/ondrasimku/video-publish-service/internal/upload"
	"github.com/ondrasimku/video-publish-service/internal/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewLogger(log.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	gin.SetMode(gin.ReleaseMode)

	storage, err := local.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	catalog, err := seo.LoadCatalog(cfg.SEOCatalogPath)
	if err != nil {
		logger.Error("Failed to load SEO catalog", "path", cfg.SEOCatalogPath, "error", err)
		os.Exit(1)
	}

	materializer := asset.NewMaterializer(storage, logger,
		asset.WithMaxSize(cfg.MaxFileSize),
		asset.WithDownloadTimeout(cfg.DownloadTimeout),
	)
	publisher := youtube.NewPublisher(youtube.Config{
		ClientID:          cfg.YouTube.ClientID,
		ClientSecret:      cfg.YouTube.ClientSecret,
		RefreshToken:      cfg.YouTube.RefreshToken,
		PrivacyStatus:     cfg.YouTube.PrivacyStatus,
		NotifySubscribers: cfg.YouTube.NotifySubscribers,
		MadeForKids:       cfg.YouTube.MadeForKids,
	}, logger)
	if cfg.YouTube.ClientID == "" || cfg.YouTube.RefreshToken == "" {
		logger.Warn("YouTube credentials are not configured; uploads will fail until they are set")
	}

	service := upload.NewService(materializer, storage, seo.NewGenerator(catalog, logger), publisher, logger)
	router := httphandler.NewRouter(service, logger)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting publish service", "addr", cfg.HTTPAddr, "storageDir", cfg.StorageDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	// in-flight uploads may still be publishing
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}
