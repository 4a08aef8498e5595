package blog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostStatus is the domain type for post publication states.
type PostStatus string

// Post status constants (typed).
const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// MarkdownContentType is the content type recorded for every post body.
const MarkdownContentType = "text/markdown; charset=utf-8"

// Valid reports whether s is a known post status.
func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Post represents a post's metadata row. The body itself lives in a
// BlobStore under ContentKey; ContentLength and ContentHash describe the
// content as of the last successful content write and are not re-verified
// against the blob store on reads.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	Status        PostStatus `json:"status"`
	PublishedAt   time.Time  `json:"publishedAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	ContentKey    string     `json:"contentKey"`
	ContentType   string     `json:"contentType"`
	ContentLength int64      `json:"contentLength"`
	ContentHash   string     `json:"contentHash"`
}

// Summary returns the listing view of the post.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		PublishedAt: p.PublishedAt,
	}
}

// PostSummary is the reduced view returned by published listings.
type PostSummary struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	PublishedAt time.Time `json:"publishedAt"`
}

// PostWithContent combines a post with its current body, built fresh on
// every read. Content is nil when no blob exists at the post's ContentKey;
// the caller decides whether missing content counts as not found. ETag is
// the blob store's freshness token, falling back to the recorded
// ContentHash when the store does not provide one.
type PostWithContent struct {
	Post    *Post
	Content *string
	ETag    string
}

// ContentKeyForSlug derives the blob locator for a slug. The derivation is
// deterministic: recomputing it for the same slug always yields the same
// key, which is what makes in-place content overwrites safe.
func ContentKeyForSlug(slug string) string {
	return fmt.Sprintf("posts/%s.md", slug)
}
