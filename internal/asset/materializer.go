package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ondrasimku/video-publish-service/internal/domain"
	"github.com/ondrasimku/video-publish-service/internal/storage"
)

type Materializer struct {
	storage storage.Storage
	client  *http.Client
	maxSize int64
	timeout time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Materializer)

// WithHTTPClient replaces the client used for remote links.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Materializer) {
		if client != nil {
			m.client = client
		}
	}
}

// WithMaxSize limits the size of a single video. Zero means unlimited.
func WithMaxSize(limit int64) Option {
	return func(m *Materializer) {
		m.maxSize = limit
	}
}

// WithDownloadTimeout bounds a whole remote download. Zero means no timeout.
func WithDownloadTimeout(timeout time.Duration) Option {
	return func(m *Materializer) {
		m.timeout = timeout
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Materializer) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMaterializer(store storage.Storage, logger *slog.Logger, opts ...Option) *Materializer {
	m := &Materializer{
		storage: store,
		client:  &http.Client{},
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.timeout > 0 {
		client := *m.client
		client.Timeout = m.timeout
		m.client = &client
	}
	return m
}

// Materialize writes the source into ephemeral storage. Whenever a path was
// reserved the returned asset carries it, even on error, and the caller owns
// its deletion.
func (m *Materializer) Materialize(ctx context.Context, src domain.Source) (domain.MaterializedAsset, error) {
	switch s := src.(type) {
	case domain.FileSource:
		return m.fromFile(ctx, s)
	case domain.LinkSource:
		return m.fromLink(ctx, s)
	default:
		return domain.MaterializedAsset{}, fmt.Errorf("unsupported video source %T", src)
	}
}

func (m *Materializer) fromFile(ctx context.Context, src domain.FileSource) (domain.MaterializedAsset, error) {
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("upload-%d.mp4", m.now().UnixMilli())
	}

	if m.maxSize > 0 && src.Size > m.maxSize {
		return domain.MaterializedAsset{}, &domain.ErrTooLarge{Limit: m.maxSize}
	}

	if src.Open == nil {
		return domain.MaterializedAsset{}, errors.New("uploaded video cannot be read")
	}
	body, err := src.Open()
	if err != nil {
		return domain.MaterializedAsset{}, fmt.Errorf("failed to open uploaded video: %w", err)
	}
	defer body.Close()

	asset, err := m.store(ctx, name, body)
	if err != nil {
		return asset, err
	}

	m.logger.Info("Uploaded video materialized", "path", asset.Path, "size", asset.Size, "filename", asset.DerivedFilename)
	return asset, nil
}

func (m *Materializer) fromLink(ctx context.Context, src domain.LinkSource) (domain.MaterializedAsset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return domain.MaterializedAsset{}, fmt.Errorf("invalid video link: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return domain.MaterializedAsset{}, fmt.Errorf("failed to download video from link: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.MaterializedAsset{}, &domain.DownloadError{StatusCode: resp.StatusCode}
	}

	if m.maxSize > 0 && resp.ContentLength > m.maxSize {
		return domain.MaterializedAsset{}, &domain.ErrTooLarge{Limit: m.maxSize}
	}

	name := DeriveFilename(resp.Header.Get("Content-Disposition"), src.URL)

	asset, err := m.store(ctx, name, resp.Body)
	if err != nil {
		return asset, err
	}

	m.logger.Info("Remote video materialized", "path", asset.Path, "size", asset.Size, "filename", asset.DerivedFilename, "link", src.URL)
	return asset, nil
}

func (m *Materializer) store(ctx context.Context, name string, r io.Reader) (domain.MaterializedAsset, error) {
	path, err := m.storage.Reserve(ctx, name)
	if err != nil {
		return domain.MaterializedAsset{}, fmt.Errorf("failed to reserve storage: %w", err)
	}
	asset := domain.MaterializedAsset{Path: path, DerivedFilename: name}

	if m.maxSize > 0 {
		r = &limitReader{r: r, remaining: m.maxSize, limit: m.maxSize}
	}

	size, err := m.storage.Write(ctx, path, r)
	if err != nil {
		var tooLarge *domain.ErrTooLarge
		if errors.As(err, &tooLarge) {
			return asset, tooLarge
		}
		return asset, err
	}
	asset.Size = size

	return asset, nil
}

// limitReader fails with ErrTooLarge once more than limit bytes were read.
type limitReader struct {
	r         io.Reader
	remaining int64
	limit     int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, &domain.ErrTooLarge{Limit: l.limit}
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, &domain.ErrTooLarge{Limit: l.limit}
	}
	return n, err
}
