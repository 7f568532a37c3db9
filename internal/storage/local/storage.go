// Package local stores batch outputs on the local filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage reads sources and writes outputs as plain files. It is the default
// backend for the desktop workflow, where inputs and outputs are paths.
type Storage struct{}

// NewStorage creates a local filesystem storage backend.
func NewStorage() *Storage {
	return &Storage{}
}

// Save writes src into dir/filename, creating dir if needed, and returns the
// written path. Existing files are overwritten.
func (s *Storage) Save(_ context.Context, dir, filename string, src io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return path, nil
}

// Load opens the file at path for reading.
func (s *Storage) Load(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	return f, nil
}

// Delete removes the file at path.
func (s *Storage) Delete(_ context.Context, path string) error {
	return os.Remove(path)
}
