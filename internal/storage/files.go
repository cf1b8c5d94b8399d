package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore writes uploaded medical documents to a local directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the upload directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes data under a timestamp-prefixed name derived from the original
// filename and returns the stored name and its path.
func (f *FileStore) Save(data []byte, originalName string) (string, string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalName))
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to store file %s: %w", name, err)
	}
	return name, path, nil
}

// Dir returns the directory files are stored under.
func (f *FileStore) Dir() string {
	return f.dir
}
