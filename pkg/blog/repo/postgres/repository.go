package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/purinx/my-blog/pkg/blog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements blog.MetadataStore using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL metadata store
func New(db DBTX) blog.MetadataStore {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL metadata store with connection pool
func NewWithPool(pool *pgxpool.Pool) blog.MetadataStore {
	return &Repository{db: pool}
}

const postColumns = `id, slug, title, excerpt, status, published_at, updated_at,
		content_key, content_type, content_length, content_hash`

func scanPost(row pgx.Row) (*blog.Post, error) {
	var post blog.Post
	err := row.Scan(
		&post.ID, &post.Slug, &post.Title, &post.Excerpt, &post.Status,
		&post.PublishedAt, &post.UpdatedAt,
		&post.ContentKey, &post.ContentType, &post.ContentLength, &post.ContentHash)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*blog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	if publishedOnly {
		query += ` AND status = 'published'`
	}
	query += ` LIMIT 1`

	post, err := scanPost(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post by slug: %w", err)
	}

	return post, nil
}

func (r *Repository) List(ctx context.Context) ([]*blog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY published_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*blog.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (r *Repository) ListPublished(ctx context.Context) ([]blog.PostSummary, error) {
	query := `
		SELECT id, slug, title, excerpt, published_at
		FROM posts
		WHERE status = 'published'
		ORDER BY published_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var summaries []blog.PostSummary
	for rows.Next() {
		var s blog.PostSummary
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Excerpt, &s.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan post summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}

	return summaries, nil
}

func (r *Repository) Insert(ctx context.Context, post *blog.Post) error {
	query := `
		INSERT INTO posts (
			id, slug, title, excerpt, status, published_at, updated_at,
			content_key, content_type, content_length, content_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Slug, post.Title, post.Excerpt, post.Status,
		post.PublishedAt, post.UpdatedAt,
		post.ContentKey, post.ContentType, post.ContentLength, post.ContentHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return blog.ErrSlugExists
		}
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, slug string, post *blog.Post) error {
	query := `
		UPDATE posts SET
			title = $2, excerpt = $3, status = $4, published_at = $5, updated_at = $6,
			content_key = $7, content_type = $8, content_length = $9, content_hash = $10
		WHERE slug = $1`

	tag, err := r.db.Exec(ctx, query,
		slug, post.Title, post.Excerpt, post.Status,
		post.PublishedAt, post.UpdatedAt,
		post.ContentKey, post.ContentType, post.ContentLength, post.ContentHash)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}

	return nil
}
