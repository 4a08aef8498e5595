package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface. It holds no mutable state;
// every operation is an independent unit of work against the two stores.
type service struct {
	metadata MetadataStore
	blobs    BlobStore
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithMetadataStore sets the metadata store for the service
func WithMetadataStore(store MetadataStore) Option {
	return func(s *service) {
		s.metadata = store
	}
}

// WithBlobStore sets the blob store for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobs = store
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.metadata == nil {
		return nil, fmt.Errorf("metadata store is required")
	}
	if s.blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

func (s *service) GetPublishedPost(ctx context.Context, slug string) (*PostWithContent, error) {
	return s.getPost(ctx, slug, true)
}

func (s *service) GetPost(ctx context.Context, slug string) (*PostWithContent, error) {
	return s.getPost(ctx, slug, false)
}

func (s *service) getPost(ctx context.Context, slug string, publishedOnly bool) (*PostWithContent, error) {
	post, err := s.metadata.FindBySlug(ctx, slug, publishedOnly)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, &PostError{Slug: slug, Op: "get", Err: err}
	}

	return s.readContent(ctx, post)
}

// readContent fetches the post's body and pairs it with the record. A
// missing blob yields a nil Content, not an error.
func (s *service) readContent(ctx context.Context, post *Post) (*PostWithContent, error) {
	obj, err := s.blobs.Download(ctx, post.ContentKey)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return &PostWithContent{Post: post, ETag: post.ContentHash}, nil
		}
		return nil, &StorageError{Key: post.ContentKey, Op: "download", Err: err}
	}
	defer obj.Content.Close()

	data, err := io.ReadAll(obj.Content)
	if err != nil {
		return nil, &StorageError{Key: post.ContentKey, Op: "read", Err: err}
	}

	content := string(data)
	etag := obj.ETag
	if etag == "" {
		etag = post.ContentHash
	}

	return &PostWithContent{Post: post, Content: &content, ETag: etag}, nil
}

func (s *service) ListPublishedPosts(ctx context.Context) ([]PostSummary, error) {
	summaries, err := s.metadata.ListPublished(ctx)
	if err != nil {
		return nil, &PostError{Op: "list_published", Err: err}
	}
	return summaries, nil
}

func (s *service) ListPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.metadata.List(ctx)
	if err != nil {
		return nil, &PostError{Op: "list", Err: err}
	}
	return posts, nil
}

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	// Advisory pre-check only. The metadata store's unique constraint is
	// the authoritative guard against racing creators of the same slug.
	_, err := s.metadata.FindBySlug(ctx, req.Slug, false)
	if err == nil {
		return nil, ErrSlugExists
	}
	if !errors.Is(err, ErrPostNotFound) {
		return nil, &PostError{Slug: req.Slug, Op: "create", Err: err}
	}

	now := time.Now().UTC()
	publishedAt := now
	if req.PublishedAt != nil {
		publishedAt = *req.PublishedAt
	}
	status := StatusPublished
	if req.Status != nil && *req.Status == StatusDraft {
		status = StatusDraft
	}

	meta := ComputeContentMeta(req.Content)
	post := &Post{
		ID:            uuid.New(),
		Slug:          req.Slug,
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Status:        status,
		PublishedAt:   publishedAt,
		UpdatedAt:     now,
		ContentKey:    ContentKeyForSlug(req.Slug),
		ContentType:   MarkdownContentType,
		ContentLength: meta.Length,
		ContentHash:   meta.Hash,
	}

	// The blob is written before the metadata row so that any row that
	// ends up existing always has a blob write attempt behind it.
	if err := s.blobs.Upload(ctx, post.ContentKey, strings.NewReader(req.Content), post.ContentType); err != nil {
		return nil, &StorageError{Key: post.ContentKey, Op: "upload", Err: err}
	}

	if err := s.metadata.Insert(ctx, post); err != nil {
		// Compensate by removing the just-written blob. A failure of the
		// compensating delete propagates instead of the insert error.
		if delErr := s.blobs.Delete(ctx, post.ContentKey); delErr != nil {
			return nil, &StorageError{Key: post.ContentKey, Op: "compensate", Err: delErr}
		}
		if errors.Is(err, ErrSlugExists) {
			return nil, ErrSlugExists
		}
		return nil, &PostError{Slug: req.Slug, Op: "insert", Err: err}
	}

	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, slug string, req UpdatePostRequest) (*Post, error) {
	existing, err := s.metadata.FindBySlug(ctx, slug, false)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, &PostError{Slug: slug, Op: "update", Err: err}
	}

	post := *existing
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.PublishedAt != nil {
		post.PublishedAt = *req.PublishedAt
	}

	if req.Content != nil {
		// The key is a pure function of the immutable slug, so this is an
		// in-place overwrite and needs no compensation.
		meta := ComputeContentMeta(*req.Content)
		post.ContentKey = ContentKeyForSlug(slug)
		post.ContentType = MarkdownContentType
		post.ContentLength = meta.Length
		post.ContentHash = meta.Hash

		if err := s.blobs.Upload(ctx, post.ContentKey, strings.NewReader(*req.Content), post.ContentType); err != nil {
			return nil, &StorageError{Key: post.ContentKey, Op: "upload", Err: err}
		}
	}

	post.UpdatedAt = time.Now().UTC()

	if err := s.metadata.Update(ctx, slug, &post); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, &PostError{Slug: slug, Op: "update", Err: err}
	}

	return &post, nil
}

func (s *service) DeletePost(ctx context.Context, slug string) error {
	existing, err := s.metadata.FindBySlug(ctx, slug, false)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return ErrPostNotFound
		}
		return &PostError{Slug: slug, Op: "delete", Err: err}
	}

	// Metadata first: once the row is gone the blob is unreachable through
	// any read path, so a leftover blob after a failed second step is inert
	// garbage for an out-of-band sweep, not a correctness hazard.
	if err := s.metadata.Delete(ctx, slug); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return ErrPostNotFound
		}
		return &PostError{Slug: slug, Op: "delete", Err: err}
	}

	if err := s.blobs.Delete(ctx, existing.ContentKey); err != nil {
		return &StorageError{Key: existing.ContentKey, Op: "delete", Err: err}
	}

	return nil
}
