package blog

import "time"

// Request DTOs
//
// These are strictly-typed, pre-validated inputs. HTTP callers are expected
// to parse loosely-typed request bodies into these structures before
// reaching the service; the service performs no presence or shape
// validation of its own.

// CreatePostRequest contains parameters for creating a post.
type CreatePostRequest struct {
	Slug    string
	Title   string
	Excerpt string
	Content string

	// Status defaults to published when nil.
	Status *PostStatus

	// PublishedAt defaults to the current time when nil.
	PublishedAt *time.Time
}

// UpdatePostRequest contains parameters for updating a post. A nil field
// keeps the existing value; a nil Content leaves the stored body and the
// recorded contentKey/contentType/contentLength/contentHash untouched.
type UpdatePostRequest struct {
	Title       *string
	Excerpt     *string
	Content     *string
	Status      *PostStatus
	PublishedAt *time.Time
}
