package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ondrasimku/video-publish-service/internal/domain"
	"github.com/ondrasimku/video-publish-service/internal/upload"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type UploadResponse struct {
	Success bool                  `json:"success"`
	Summary *domain.UploadSummary `json:"summary"`
}

type UploadProcessor interface {
	Process(ctx context.Context, form upload.Form) (*domain.UploadSummary, error)
}

type UploadHandler struct {
	processor UploadProcessor
	logger    *slog.Logger
}

func NewUploadHandler(processor UploadProcessor, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	form := upload.Form{
		Category:     c.PostForm("category"),
		Language:     c.PostForm("language"),
		Monetization: c.PostForm("monetization"),
		Schedule:     c.PostForm("schedule"),
		VideoLink:    c.PostForm("videoLink"),
	}

	if file, err := c.FormFile("videoFile"); err == nil {
		form.VideoFile = &domain.FileSource{
			Name: file.Filename,
			Size: file.Size,
			Open: func() (io.ReadCloser, error) {
				return file.Open()
			},
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		h.logger.Warn("Failed to read video file from form", "error", err)
	}

	summary, err := h.processor.Process(c.Request.Context(), form)
	if err != nil {
		status, message := classify(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Upload failed", "status", status, "error", err)
		} else {
			h.logger.Warn("Upload rejected", "status", status, "error", err)
		}
		c.JSON(status, ErrorResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success: true,
		Summary: summary,
	})
}

// classify maps a pipeline error to the response status and message.
func classify(err error) (int, string) {
	message := err.Error()
	if message == "" {
		message = domain.FallbackErrorMessage
	}

	var tooLarge *domain.ErrTooLarge
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, message
	}

	var uerr *domain.Error
	if !errors.As(err, &uerr) {
		return http.StatusInternalServerError, message
	}

	switch uerr.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest, message
	case domain.KindAcquisition, domain.KindCollaborator:
		return http.StatusInternalServerError, message
	default:
		return http.StatusInternalServerError, message
	}
}
