package blog

import "context"

// Service is the post repository: it orchestrates the metadata store and
// the blob store into consistent create/read/update/delete/list operations.
//
// There is no transaction spanning the two stores. Consistency is obtained
// procedurally: the blob is written before the metadata row on create (a
// row never references a key no write was attempted at), and the metadata
// row is removed before the blob on delete (a leftover blob is unreachable
// once the row is gone). Business outcomes surface as ErrSlugExists and
// ErrPostNotFound; anything else is an infrastructure failure.
type Service interface {
	// GetPublishedPost returns the published post with the given slug and
	// its body. Draft posts are treated as absent.
	GetPublishedPost(ctx context.Context, slug string) (*PostWithContent, error)

	// GetPost returns the post with the given slug regardless of status,
	// together with its body.
	GetPost(ctx context.Context, slug string) (*PostWithContent, error)

	// ListPublishedPosts returns summaries of published posts, newest
	// publishedAt first.
	ListPublishedPosts(ctx context.Context) ([]PostSummary, error)

	// ListPosts returns all posts regardless of status, newest publishedAt
	// first.
	ListPosts(ctx context.Context) ([]*Post, error)

	// CreatePost writes the body to the blob store, then inserts the
	// metadata row, compensating with a blob delete if the insert fails.
	// Returns ErrSlugExists when the slug is taken.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// UpdatePost merges the given fields over the existing post,
	// overwriting the body in place when content is provided. Returns
	// ErrPostNotFound when the slug does not exist.
	UpdatePost(ctx context.Context, slug string, req UpdatePostRequest) (*Post, error)

	// DeletePost removes the metadata row, then the blob. Returns
	// ErrPostNotFound when the slug does not exist.
	DeletePost(ctx context.Context, slug string) error
}
