package fsx

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// FileSystem abstracts blob storage for artifacts like screenshots
type FileSystem interface {
	// Join composes a storage path from segments
	Join(segments ...string) string

	// WriteFile stores data at the given path, creating parents as needed
	WriteFile(ctx context.Context, path string, data []byte) error

	// ReadFileStream opens the file at path for reading
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)

	// DeleteFile removes the file at path
	DeleteFile(ctx context.Context, path string) error
}

// LocalFileSystem stores files under a root directory on local disk
type LocalFileSystem struct {
	root string
}

// NewLocalFileSystem creates a local filesystem rooted at dir
func NewLocalFileSystem(dir string) *LocalFileSystem {
	return &LocalFileSystem{root: dir}
}

func (fs *LocalFileSystem) Join(segments ...string) string {
	return filepath.Join(segments...)
}

func (fs *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	full := filepath.Join(fs.root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (fs *LocalFileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(fs.root, path))
}

func (fs *LocalFileSystem) DeleteFile(ctx context.Context, path string) error {
	return os.Remove(filepath.Join(fs.root, path))
}
