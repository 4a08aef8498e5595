package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purinx/my-blog/pkg/blog"
)

func newPost(slug string, status blog.PostStatus, publishedAt time.Time) *blog.Post {
	meta := blog.ComputeContentMeta("content of " + slug)
	return &blog.Post{
		ID:            uuid.New(),
		Slug:          slug,
		Title:         "Title " + slug,
		Excerpt:       "Excerpt " + slug,
		Status:        status,
		PublishedAt:   publishedAt,
		UpdatedAt:     publishedAt,
		ContentKey:    blog.ContentKeyForSlug(slug),
		ContentType:   blog.MarkdownContentType,
		ContentLength: meta.Length,
		ContentHash:   meta.Hash,
	}
}

func TestInsertAndFindBySlug(t *testing.T) {
	repo := New()
	ctx := context.Background()

	post := newPost("hello", blog.StatusPublished, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, post))

	found, err := repo.FindBySlug(ctx, "hello", false)
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
	assert.Equal(t, post.ContentHash, found.ContentHash)

	// Returned copies must not alias the stored record.
	found.Title = "mutated"
	again, err := repo.FindBySlug(ctx, "hello", false)
	require.NoError(t, err)
	assert.Equal(t, "Title hello", again.Title)
}

func TestInsertConflict(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newPost("dup", blog.StatusPublished, time.Now().UTC())))

	err := repo.Insert(ctx, newPost("dup", blog.StatusDraft, time.Now().UTC()))
	assert.ErrorIs(t, err, blog.ErrSlugExists)
}

func TestFindBySlugPublishedOnly(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newPost("draft-post", blog.StatusDraft, time.Now().UTC())))

	_, err := repo.FindBySlug(ctx, "draft-post", true)
	assert.ErrorIs(t, err, blog.ErrPostNotFound)

	found, err := repo.FindBySlug(ctx, "draft-post", false)
	require.NoError(t, err)
	assert.Equal(t, blog.StatusDraft, found.Status)
}

func TestFindBySlugMissing(t *testing.T) {
	repo := New()

	_, err := repo.FindBySlug(context.Background(), "missing", false)
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}

func TestListOrdering(t *testing.T) {
	repo := New()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, newPost("first", blog.StatusPublished, base)))
	require.NoError(t, repo.Insert(ctx, newPost("third", blog.StatusPublished, base.AddDate(0, 2, 0))))
	require.NoError(t, repo.Insert(ctx, newPost("second", blog.StatusDraft, base.AddDate(0, 1, 0))))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Slug)
	assert.Equal(t, "second", posts[1].Slug)
	assert.Equal(t, "first", posts[2].Slug)
}

func TestListPublishedFiltersAndOrders(t *testing.T) {
	repo := New()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, newPost("old", blog.StatusPublished, base)))
	require.NoError(t, repo.Insert(ctx, newPost("new", blog.StatusPublished, base.AddDate(0, 1, 0))))
	require.NoError(t, repo.Insert(ctx, newPost("wip", blog.StatusDraft, base.AddDate(0, 2, 0))))

	summaries, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "new", summaries[0].Slug)
	assert.Equal(t, "old", summaries[1].Slug)
}

func TestUpdate(t *testing.T) {
	repo := New()
	ctx := context.Background()

	post := newPost("mutable", blog.StatusPublished, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, post))

	updated := *post
	updated.Title = "Updated"
	require.NoError(t, repo.Update(ctx, "mutable", &updated))

	found, err := repo.FindBySlug(ctx, "mutable", false)
	require.NoError(t, err)
	assert.Equal(t, "Updated", found.Title)
}

func TestUpdateMissing(t *testing.T) {
	repo := New()

	err := repo.Update(context.Background(), "missing", newPost("missing", blog.StatusPublished, time.Now().UTC()))
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}

func TestDelete(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newPost("gone", blog.StatusPublished, time.Now().UTC())))
	require.NoError(t, repo.Delete(ctx, "gone"))

	_, err := repo.FindBySlug(ctx, "gone", false)
	assert.ErrorIs(t, err, blog.ErrPostNotFound)

	err = repo.Delete(ctx, "gone")
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}
