package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/anonto42/yatube/backend/internal/storage"
)

// MemoryImages is an in-memory storage.ImageStore.
type MemoryImages struct {
	mu    sync.Mutex
	files map[string][]byte
	types map[string]string
}

func NewMemoryImages() *MemoryImages {
	return &MemoryImages{files: map[string][]byte{}, types: map[string]string{}}
}

func (m *MemoryImages) Save(_ context.Context, filename, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	ref := storage.NewImageRef(filename)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[ref] = data
	m.types[ref] = contentType
	return ref, nil
}

func (m *MemoryImages) Open(_ context.Context, ref string) (io.ReadCloser, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[ref]
	if !ok {
		return nil, "", storage.ErrImageNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), m.types[ref], nil
}

func (m *MemoryImages) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[ref]; !ok {
		return storage.ErrImageNotFound
	}
	delete(m.files, ref)
	delete(m.types, ref)
	return nil
}

// Len is the number of stored images.
func (m *MemoryImages) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
