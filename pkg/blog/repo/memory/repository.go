package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/purinx/my-blog/pkg/blog"
)

// Repository implements blog.MetadataStore using in-memory storage. It is
// intended for tests and local development.
type Repository struct {
	mu    sync.RWMutex
	posts map[string]*blog.Post // keyed by slug
}

// New creates a new in-memory metadata store
func New() blog.MetadataStore {
	return &Repository{
		posts: make(map[string]*blog.Post),
	}
}

func (r *Repository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[slug]
	if !exists {
		return nil, blog.ErrPostNotFound
	}
	if publishedOnly && post.Status != blog.StatusPublished {
		return nil, blog.ErrPostNotFound
	}

	// Return a copy to prevent external modifications
	postCopy := *post
	return &postCopy, nil
}

func (r *Repository) List(ctx context.Context) ([]*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*blog.Post, 0, len(r.posts))
	for _, post := range r.posts {
		postCopy := *post
		result = append(result, &postCopy)
	}

	sortByPublishedAtDesc(result)
	return result, nil
}

func (r *Repository) ListPublished(ctx context.Context) ([]blog.PostSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var published []*blog.Post
	for _, post := range r.posts {
		if post.Status == blog.StatusPublished {
			published = append(published, post)
		}
	}

	sortByPublishedAtDesc(published)

	summaries := make([]blog.PostSummary, 0, len(published))
	for _, post := range published {
		summaries = append(summaries, post.Summary())
	}
	return summaries, nil
}

func (r *Repository) Insert(ctx context.Context, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.Slug]; exists {
		return blog.ErrSlugExists
	}

	postCopy := *post
	r.posts[post.Slug] = &postCopy
	return nil
}

func (r *Repository) Update(ctx context.Context, slug string, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[slug]; !exists {
		return blog.ErrPostNotFound
	}

	postCopy := *post
	r.posts[slug] = &postCopy
	return nil
}

func (r *Repository) Delete(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[slug]; !exists {
		return blog.ErrPostNotFound
	}

	delete(r.posts, slug)
	return nil
}

func sortByPublishedAtDesc(posts []*blog.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}
