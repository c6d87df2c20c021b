package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	StorageDir      string
	MaxFileSize     int64
	DownloadTimeout time.Duration
	SEOCatalogPath  string
	Log             LogConfig
	YouTube         YouTubeConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type YouTubeConfig struct {
	ClientID          string
	ClientSecret      string
	RefreshToken      string
	PrivacyStatus     string
	NotifySubscribers bool
	MadeForKids       bool
}

// Load reads the process environment, after applying a .env file from the
// working directory when one exists. Variables already set win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	maxFileSize, err := strconv.ParseInt(getEnv("PUBLISH_MAX_FILE_SIZE", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PUBLISH_MAX_FILE_SIZE: %w", err)
	}
	if maxFileSize < 0 {
		return nil, fmt.Errorf("invalid PUBLISH_MAX_FILE_SIZE: must not be negative")
	}

	downloadTimeout, err := time.ParseDuration(getEnv("PUBLISH_DOWNLOAD_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUBLISH_DOWNLOAD_TIMEOUT: %w", err)
	}

	notify, err := strconv.ParseBool(getEnv("YOUTUBE_NOTIFY_SUBSCRIBERS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid YOUTUBE_NOTIFY_SUBSCRIBERS: %w", err)
	}

	madeForKids, err := strconv.ParseBool(getEnv("YOUTUBE_MADE_FOR_KIDS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid YOUTUBE_MADE_FOR_KIDS: %w", err)
	}

	return &Config{
		HTTPAddr:        getEnv("PUBLISH_HTTP_ADDR", ":8080"),
		StorageDir:      getEnv("PUBLISH_STORAGE_DIR", os.TempDir()),
		MaxFileSize:     maxFileSize,
		DownloadTimeout: downloadTimeout,
		SEOCatalogPath:  getEnv("PUBLISH_SEO_CATALOG", ""),
		Log: LogConfig{
			Level:  getEnv("PUBLISH_LOG_LEVEL", "info"),
			Format: getEnv("PUBLISH_LOG_FORMAT", "json"),
		},
		YouTube: YouTubeConfig{
			ClientID:          getEnv("YOUTUBE_CLIENT_ID", ""),
			ClientSecret:      getEnv("YOUTUBE_CLIENT_SECRET", ""),
			RefreshToken:      getEnv("YOUTUBE_REFRESH_TOKEN", ""),
			PrivacyStatus:     getEnv("YOUTUBE_PRIVACY_STATUS", "public"),
			NotifySubscribers: notify,
			MadeForKids:       madeForKids,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
