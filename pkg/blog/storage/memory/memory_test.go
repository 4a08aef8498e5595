package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purinx/my-blog/pkg/blog"
)

func TestUploadAndDownload(t *testing.T) {
	backend := New()
	ctx := context.Background()

	err := backend.Upload(ctx, "posts/a.md", strings.NewReader("hello"), blog.MarkdownContentType)
	require.NoError(t, err)

	obj, err := backend.Download(ctx, "posts/a.md")
	require.NoError(t, err)
	defer obj.Content.Close()

	data, err := io.ReadAll(obj.Content)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.NotEmpty(t, obj.ETag)

	ct, ok := backend.ContentType("posts/a.md")
	require.True(t, ok)
	assert.Equal(t, blog.MarkdownContentType, ct)
}

func TestDownloadMissing(t *testing.T) {
	backend := New()

	_, err := backend.Download(context.Background(), "posts/missing.md")
	assert.ErrorIs(t, err, blog.ErrBlobNotFound)
}

func TestOverwriteChangesEtag(t *testing.T) {
	backend := New()
	ctx := context.Background()

	require.NoError(t, backend.Upload(ctx, "k", strings.NewReader("v1"), blog.MarkdownContentType))
	first, err := backend.Download(ctx, "k")
	require.NoError(t, err)
	first.Content.Close()

	require.NoError(t, backend.Upload(ctx, "k", strings.NewReader("v2"), blog.MarkdownContentType))
	second, err := backend.Download(ctx, "k")
	require.NoError(t, err)
	second.Content.Close()

	assert.NotEqual(t, first.ETag, second.ETag)
}

func TestDeleteIdempotent(t *testing.T) {
	backend := New()
	ctx := context.Background()

	require.NoError(t, backend.Upload(ctx, "k", strings.NewReader("v"), blog.MarkdownContentType))
	require.NoError(t, backend.Delete(ctx, "k"))

	_, err := backend.Download(ctx, "k")
	assert.ErrorIs(t, err, blog.ErrBlobNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, backend.Delete(ctx, "k"))
}
