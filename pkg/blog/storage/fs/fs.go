package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/purinx/my-blog/pkg/blog"
)

// Backend is a filesystem implementation of the blog.BlobStore interface
type Backend struct {
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing objects
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

// Upload writes the object to disk, creating parent directories as needed.
// The contentType is not persisted; the filesystem has nowhere to keep it.
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	filePath := filepath.Join(b.baseDir, key)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Download opens the object for reading. The etag is derived from the
// file's modification time and size, the same scheme net/http uses for
// static files.
func (b *Backend) Download(ctx context.Context, key string) (*blog.BlobObject, error) {
	filePath := filepath.Join(b.baseDir, key)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, blog.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &blog.BlobObject{
		Content: file,
		ETag:    fmt.Sprintf("%x-%x", info.ModTime().UnixNano(), info.Size()),
	}, nil
}

// Delete removes the object. Deleting a missing key is a no-op.
func (b *Backend) Delete(ctx context.Context, key string) error {
	filePath := filepath.Join(b.baseDir, key)

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
