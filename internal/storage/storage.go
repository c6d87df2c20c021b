package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
)

var ErrNotFound = errors.New("file not found")

// Storage holds request-scoped video files. A reserved path is owned by the
// caller until it is deleted.
type Storage interface {
	Reserve(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, path string, r io.Reader) (int64, error)
	Delete(ctx context.Context, path string) error
}

// DefaultName is used when a name sanitizes to nothing.
const DefaultName = "video.mp4"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeName replaces every character outside [a-zA-Z0-9._-] with '_'.
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// SafeName is SanitizeName with a DefaultName fallback for empty input.
func SafeName(name string) string {
	if safe := SanitizeName(name); safe != "" {
		return safe
	}
	return DefaultName
}
