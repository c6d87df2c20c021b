package domain

import (
	"context"
	"io"
)

type Monetization string

const (
	Monetized    Monetization = "monetized"
	NonMonetized Monetization = "non-monetized"
)

func (m Monetization) IsMonetized() bool {
	return m == Monetized
}

// Source is the single video source a request resolves to. Exactly one of
// FileSource or LinkSource.
type Source interface {
	isSource()
}

// FileSource is a video uploaded with the request. Open may be called once.
type FileSource struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

type LinkSource struct {
	URL string
}

func (FileSource) isSource() {}
func (LinkSource) isSource() {}

// UploadRequest is a validated request. Schedule is nil when the video should
// be published immediately.
type UploadRequest struct {
	Category     string
	Language     string
	Monetization Monetization
	Schedule     *string
	Source       Source
}

type MaterializedAsset struct {
	Path            string
	DerivedFilename string
	Size            int64
}

type Metadata struct {
	Title           string
	Description     string
	Tags            []string
	Hashtags        []string
	ThumbnailPrompt string
}

type MetadataInput struct {
	Category     string
	Language     string
	Monetization Monetization
	Schedule     *string
	VideoLink    *string
	FileName     string
}

type PublishInput struct {
	FilePath     string
	Metadata     Metadata
	Category     string
	Language     string
	Monetization Monetization
	Schedule     *string
}

type PublishResult struct {
	VideoID string
	URL     string
}

type UploadSummary struct {
	VideoTitle       string   `json:"videoTitle"`
	VideoDescription string   `json:"videoDescription"`
	Tags             []string `json:"tags"`
	Hashtags         []string `json:"hashtags"`
	ThumbnailPrompt  string   `json:"thumbnailPrompt,omitempty"`
	ScheduledAt      *string  `json:"scheduledAt"`
	VideoID          string   `json:"videoId"`
	VideoURL         string   `json:"videoUrl"`
}

type MetadataGenerator interface {
	Generate(ctx context.Context, input MetadataInput) (Metadata, error)
}

type Publisher interface {
	Publish(ctx context.Context, input PublishInput) (PublishResult, error)
}
