package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ondrasimku/video-publish-service/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	return s, dir
}

func TestReserveIsUniqueAndSanitized(t *testing.T) {
	s, dir := newStorage(t)
	ctx := context.Background()

	first, err := s.Reserve(ctx, "demo video.mp4")
	require.NoError(t, err)
	second, err := s.Reserve(ctx, "demo video.mp4")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "-demo_video.mp4"))
	assert.Equal(t, filepath.Clean(dir), filepath.Dir(first))

	_, err = os.Stat(first)
	assert.True(t, os.IsNotExist(err), "reserve must not create the file")
}

func TestWriteAndDelete(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()

	path, err := s.Reserve(ctx, "clip.mp4")
	require.NoError(t, err)

	n, err := s.Write(ctx, path, strings.NewReader("video-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("video-bytes")), n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))

	require.NoError(t, s.Delete(ctx, path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, s.Delete(ctx, path), storage.ErrNotFound)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteFailureRemovesPartialFile(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()

	path, err := s.Reserve(ctx, "clip.mp4")
	require.NoError(t, err)

	_, err = s.Write(ctx, path, failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteHonoursCancelledContext(t *testing.T) {
	s, _ := newStorage(t)
	ctx, cancel := context.WithCancel(context.Background())

	path, err := s.Reserve(ctx, "clip.mp4")
	require.NoError(t, err)
	cancel()

	_, err = s.Write(ctx, path, strings.NewReader("data"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRejectsPathsOutsideBaseDir(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()
	outside := filepath.Join(t.TempDir(), "elsewhere.mp4")

	_, err := s.Write(ctx, outside, strings.NewReader("x"))
	assert.Error(t, err)
	assert.Error(t, s.Delete(ctx, outside))
}

func TestReserveEmptyName(t *testing.T) {
	s, _ := newStorage(t)
	path, err := s.Reserve(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "-video.mp4"))
}
