package blog

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrPostNotFound indicates no post exists for the given slug.
	ErrPostNotFound = errors.New("post not found")

	// ErrSlugExists indicates a post with the same slug already exists.
	ErrSlugExists = errors.New("slug already exists")

	// ErrBlobNotFound indicates no object exists at the given key.
	ErrBlobNotFound = errors.New("blob not found")
)

// PostError represents a metadata-store failure during a post operation.
type PostError struct {
	Slug string
	Op   string
	Err  error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post operation %s failed for slug %q: %v", e.Op, e.Slug, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// StorageError represents a blob-store failure during a post operation.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
