package upload

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ondrasimku/video-publish-service/internal/domain"
	"github.com/ondrasimku/video-publish-service/internal/storage"
)

// Materializer turns a video source into a file in ephemeral storage.
type Materializer interface {
	Materialize(ctx context.Context, src domain.Source) (domain.MaterializedAsset, error)
}

// Service runs one upload request end to end: validate, materialize the
// video, generate metadata, publish, and always remove the local copy.
type Service struct {
	materializer Materializer
	storage      storage.Storage
	metadata     domain.MetadataGenerator
	publisher    domain.Publisher
	logger       *slog.Logger
}

func NewService(
	materializer Materializer,
	store storage.Storage,
	metadata domain.MetadataGenerator,
	publisher domain.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		materializer: materializer,
		storage:      store,
		metadata:     metadata,
		publisher:    publisher,
		logger:       logger,
	}
}

// Process returns either a summary or a *domain.Error. Once started, a request
// runs to completion even if the caller goes away; only the materializer's
// download timeout bounds it.
func (s *Service) Process(ctx context.Context, form Form) (*domain.UploadSummary, error) {
	ctx = context.WithoutCancel(ctx)

	req, err := Validate(form)
	if err != nil {
		return nil, err
	}

	asset, err := s.materializer.Materialize(ctx, req.Source)
	if asset.Path != "" {
		defer s.cleanup(ctx, asset.Path)
	}
	if err != nil {
		s.logger.Error("Failed to materialize video", "error", err)
		return nil, domain.Acquisition(err)
	}

	metadata, err := s.metadata.Generate(ctx, domain.MetadataInput{
		Category:     req.Category,
		Language:     req.Language,
		Monetization: req.Monetization,
		Schedule:     req.Schedule,
		VideoLink:    linkOf(req.Source),
		FileName:     asset.DerivedFilename,
	})
	if err != nil {
		s.logger.Error("Failed to generate metadata", "error", err)
		return nil, domain.Collaborator(err)
	}

	result, err := s.publisher.Publish(ctx, domain.PublishInput{
		FilePath:     asset.Path,
		Metadata:     metadata,
		Category:     req.Category,
		Language:     req.Language,
		Monetization: req.Monetization,
		Schedule:     req.Schedule,
	})
	if err == nil && (result.VideoID == "" || result.URL == "") {
		err = errors.New("publisher returned an incomplete result")
	}
	if err != nil {
		s.logger.Error("Failed to publish video", "error", err)
		return nil, domain.Collaborator(err)
	}

	s.logger.Info("Video published", "videoId", result.VideoID, "url", result.URL, "scheduled", req.Schedule != nil)

	return &domain.UploadSummary{
		VideoTitle:       metadata.Title,
		VideoDescription: metadata.Description,
		Tags:             nonNil(metadata.Tags),
		Hashtags:         nonNil(metadata.Hashtags),
		ThumbnailPrompt:  metadata.ThumbnailPrompt,
		ScheduledAt:      req.Schedule,
		VideoID:          result.VideoID,
		VideoURL:         result.URL,
	}, nil
}

// cleanup removes the materialized file. Failures are only logged; they
// never change the outcome of the request.
func (s *Service) cleanup(ctx context.Context, path string) {
	if err := s.storage.Delete(ctx, path); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("Materialized video already gone", "path", path)
			return
		}
		s.logger.Warn("Failed to remove materialized video", "path", path, "error", err)
	}
}

func linkOf(src domain.Source) *string {
	if link, ok := src.(domain.LinkSource); ok {
		return &link.URL
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

