// Package memory keeps ephemeral video files in process memory. It backs
// tests and sandboxed runs where nothing should touch the disk.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/google/uuid"
	"github.com/ondrasimku/video-publish-service/internal/storage"
)

type MemoryStorage struct {
	mu       sync.Mutex
	reserved map[string]bool
	files    map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		reserved: make(map[string]bool),
		files:    make(map[string][]byte),
	}
}

func (s *MemoryStorage) Reserve(ctx context.Context, name string) (string, error) {
	p := path.Join("/mem", fmt.Sprintf("%s-%s", uuid.NewString(), storage.SafeName(name)))

	s.mu.Lock()
	s.reserved[p] = true
	s.mu.Unlock()

	return p, nil
}

func (s *MemoryStorage) Write(ctx context.Context, p string, r io.Reader) (int64, error) {
	s.mu.Lock()
	ok := s.reserved[p]
	s.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("path %q was not reserved", p)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	s.mu.Lock()
	s.files[p] = buf.Bytes()
	s.mu.Unlock()

	return n, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.reserved, p)
	if _, ok := s.files[p]; !ok {
		return storage.ErrNotFound
	}
	delete(s.files, p)
	return nil
}

func (s *MemoryStorage) Exists(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[p]
	return ok
}

func (s *MemoryStorage) Read(p string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[p]
	return data, ok
}

// Len reports how many files are currently held.
func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
