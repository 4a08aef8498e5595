package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purinx/my-blog/pkg/blog"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	backend, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	return backend
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestUploadAndDownload(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	err := backend.Upload(ctx, "posts/nested/a.md", strings.NewReader("file body"), blog.MarkdownContentType)
	require.NoError(t, err)

	obj, err := backend.Download(ctx, "posts/nested/a.md")
	require.NoError(t, err)
	defer obj.Content.Close()

	data, err := io.ReadAll(obj.Content)
	require.NoError(t, err)
	assert.Equal(t, "file body", string(data))
	assert.NotEmpty(t, obj.ETag)
}

func TestDownloadMissing(t *testing.T) {
	backend := newTestBackend(t)

	_, err := backend.Download(context.Background(), "posts/missing.md")
	assert.ErrorIs(t, err, blog.ErrBlobNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Upload(ctx, "posts/a.md", strings.NewReader("v"), blog.MarkdownContentType))
	require.NoError(t, backend.Delete(ctx, "posts/a.md"))

	_, err := backend.Download(ctx, "posts/a.md")
	assert.ErrorIs(t, err, blog.ErrBlobNotFound)

	assert.NoError(t, backend.Delete(ctx, "posts/a.md"))
}
