package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ondrasimku/video-publish-service/internal/storage"
)

type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	return &LocalStorage{baseDir: abs}, nil
}

// Reserve returns a fresh path under the base directory. The random token
// keeps two requests with the same file name apart.
func (s *LocalStorage) Reserve(ctx context.Context, name string) (string, error) {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s-%s", uuid.NewString(), storage.SafeName(name))), nil
}

func (s *LocalStorage) Write(ctx context.Context, path string, r io.Reader) (int64, error) {
	if !s.owns(path) {
		return 0, fmt.Errorf("path %q is outside storage", path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(file, contextReader{ctx: ctx, r: r})
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	return size, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if !s.owns(path) {
		return fmt.Errorf("path %q is outside storage", path)
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) owns(path string) bool {
	return strings.HasPrefix(filepath.Clean(path), s.baseDir+string(filepath.Separator))
}

// contextReader stops a copy once the request context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
