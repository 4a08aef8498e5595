package memory

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"

	"github.com/purinx/my-blog/pkg/blog"
)

// Backend is an in-memory implementation of the blog.BlobStore interface
type Backend struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	contentTypes map[string]string
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

// Upload uploads content directly
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = data
	b.contentTypes[key] = contentType
	return nil
}

// Download returns the stored object. The etag mirrors the S3 convention
// for simple puts: the hex MD5 of the stored bytes.
func (b *Backend) Download(ctx context.Context, key string) (*blog.BlobObject, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, blog.ErrBlobNotFound
	}

	sum := md5.Sum(data)
	return &blog.BlobObject{
		Content: io.NopCloser(bytes.NewReader(data)),
		ETag:    hex.EncodeToString(sum[:]),
	}, nil
}

// Delete deletes content. Deleting a missing key is a no-op.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, key)
	delete(b.contentTypes, key)
	return nil
}

// ContentType reports the content type recorded for key, for tests.
func (b *Backend) ContentType(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ct, ok := b.contentTypes[key]
	return ct, ok
}
