package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryStorage keeps uploads in process. DEV_MODE and tests use it.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailOn makes uploads whose path contains the substring fail.
	FailOn string
}

const memoryURLPrefix = "memory://"

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (m *MemoryStorage) UploadFile(_ context.Context, file io.Reader, _ string, objectPath string) (string, error) {
	if m.FailOn != "" && strings.Contains(objectPath, m.FailOn) {
		return "", fmt.Errorf("upload of %s failed", objectPath)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	m.mu.Lock()
	m.objects[objectPath] = data
	m.mu.Unlock()

	return memoryURLPrefix + objectPath, nil
}

func (m *MemoryStorage) DeleteFile(_ context.Context, fileURL string) error {
	if !strings.HasPrefix(fileURL, memoryURLPrefix) {
		return fmt.Errorf("invalid memory URL")
	}
	m.mu.Lock()
	delete(m.objects, strings.TrimPrefix(fileURL, memoryURLPrefix))
	m.mu.Unlock()
	return nil
}

// Object returns the stored bytes at objectPath.
func (m *MemoryStorage) Object(objectPath string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[objectPath]
	return data, ok
}

func (m *MemoryStorage) Close() error {
	return nil
}
