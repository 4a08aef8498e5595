package blog

import (
	"context"
	"io"
)

// BlobStore defines the interface for storage backends holding post bodies.
type BlobStore interface {
	// Upload writes or overwrites the object at key. Repeated uploads with
	// identical content yield the same stored bytes.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Download returns the object at key together with its freshness token.
	// Returns ErrBlobNotFound when no object exists at key.
	Download(ctx context.Context, key string) (*BlobObject, error)

	// Delete removes the object at key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// BlobObject is a stored object and the freshness token the backend
// reported for it. ETag may be empty for backends that do not track one.
type BlobObject struct {
	Content io.ReadCloser
	ETag    string
}

// MetadataStore defines the interface for post metadata persistence. The
// store's unique constraint on slug is the authoritative guard against
// duplicate slugs; callers may pre-check, but only Insert decides.
type MetadataStore interface {
	// FindBySlug returns the post with the given slug, or ErrPostNotFound.
	// With publishedOnly set, draft posts are treated as absent.
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*Post, error)

	// List returns all posts regardless of status, ordered by publishedAt
	// descending.
	List(ctx context.Context) ([]*Post, error)

	// ListPublished returns summaries of published posts, ordered by
	// publishedAt descending.
	ListPublished(ctx context.Context) ([]PostSummary, error)

	// Insert stores a new post. Returns ErrSlugExists when the slug is
	// already taken.
	Insert(ctx context.Context, post *Post) error

	// Update replaces the full row for slug. Returns ErrPostNotFound when
	// the slug does not exist.
	Update(ctx context.Context, slug string, post *Post) error

	// Delete removes the row for slug. Returns ErrPostNotFound when the
	// slug does not exist.
	Delete(ctx context.Context, slug string) error
}
