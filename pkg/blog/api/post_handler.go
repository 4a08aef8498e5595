package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/purinx/my-blog/pkg/blog"
)

// cacheControl is sent on public reads; responses stay correct because the
// ETag changes with every content write.
const cacheControl = "public, max-age=60, stale-while-revalidate=300"

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	service blog.Service
}

// NewPostHandler creates a new post handler
func NewPostHandler(service blog.Service) *PostHandler {
	return &PostHandler{service: service}
}

// AdminRoutes returns the routes for post administration. Mount behind
// RequireAPIKey.
func (h *PostHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPosts)
	r.Post("/", h.CreatePost)
	r.Get("/{slug}", h.GetPost)
	r.Put("/{slug}", h.UpdatePost)
	r.Delete("/{slug}", h.DeletePost)

	return r
}

// PublicRoutes returns the unauthenticated read-only routes.
func (h *PostHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPublishedPosts)
	r.Get("/{slug}", h.GetPublishedPost)

	return r
}

// ErrorResponse is the JSON body for error replies
type ErrorResponse struct {
	Error string `json:"error"`
}

// PostResponse wraps a post in the response envelope
type PostResponse struct {
	Post *blog.Post `json:"post"`
}

// PostContentResponse is a post merged with its body
type PostContentResponse struct {
	Post postWithContent `json:"post"`
}

type postWithContent struct {
	*blog.Post
	Content string `json:"content"`
}

// CreatePostBody is the loosely-typed request body for creating a post
type CreatePostBody struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	Status      string `json:"status,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// UpdatePostBody is the loosely-typed request body for updating a post
type UpdatePostBody struct {
	Title       string `json:"title,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Content     string `json:"content,omitempty"`
	Status      string `json:"status,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// ListPublishedPosts returns summaries of published posts
func (h *PostHandler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPublishedPosts(r.Context())
	if err != nil {
		h.serverError(w, r, "list published posts", err)
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	render.JSON(w, r, map[string]interface{}{"posts": posts})
}

// GetPublishedPost returns a published post with its body. Sets an ETag and
// honors If-None-Match for conditional fetches.
func (h *PostHandler) GetPublishedPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.service.GetPublishedPost(r.Context(), slug)
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			writeError(w, r, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(w, r, "get published post", err)
		return
	}

	if result.Content == nil {
		writeError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	if result.ETag != "" {
		w.Header().Set("ETag", result.ETag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == result.ETag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.Header().Set("Cache-Control", cacheControl)

	render.JSON(w, r, PostContentResponse{
		Post: postWithContent{Post: result.Post, Content: *result.Content},
	})
}

// ListPosts returns all posts regardless of status
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		h.serverError(w, r, "list posts", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{"posts": posts})
}

// GetPost returns a post of any status with its body
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.service.GetPost(r.Context(), slug)
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			writeError(w, r, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(w, r, "get post", err)
		return
	}

	if result.Content == nil {
		writeError(w, r, http.StatusNotFound, "Post content missing")
		return
	}

	render.JSON(w, r, PostContentResponse{
		Post: postWithContent{Post: result.Post, Content: *result.Content},
	})
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body CreatePostBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if !isNonEmpty(body.Slug) || !isNonEmpty(body.Title) || !isNonEmpty(body.Excerpt) || !isNonEmpty(body.Content) {
		writeError(w, r, http.StatusBadRequest, "slug, title, excerpt, content are required")
		return
	}

	req := blog.CreatePostRequest{
		Slug:    body.Slug,
		Title:   body.Title,
		Excerpt: body.Excerpt,
		Content: body.Content,
	}
	if status, ok := normalizeStatus(body.Status); ok {
		req.Status = &status
	}
	if isNonEmpty(body.PublishedAt) {
		publishedAt, err := time.Parse(time.RFC3339, body.PublishedAt)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "publishedAt must be an RFC 3339 timestamp")
			return
		}
		req.PublishedAt = &publishedAt
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		if errors.Is(err, blog.ErrSlugExists) {
			writeError(w, r, http.StatusConflict, "Slug already exists")
			return
		}
		h.serverError(w, r, "create post", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, PostResponse{Post: post})
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var body UpdatePostBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var req blog.UpdatePostRequest
	if isNonEmpty(body.Title) {
		req.Title = &body.Title
	}
	if isNonEmpty(body.Excerpt) {
		req.Excerpt = &body.Excerpt
	}
	if isNonEmpty(body.Content) {
		req.Content = &body.Content
	}
	if status, ok := normalizeStatus(body.Status); ok {
		req.Status = &status
	}
	if isNonEmpty(body.PublishedAt) {
		publishedAt, err := time.Parse(time.RFC3339, body.PublishedAt)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "publishedAt must be an RFC 3339 timestamp")
			return
		}
		req.PublishedAt = &publishedAt
	}

	post, err := h.service.UpdatePost(r.Context(), slug, req)
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			writeError(w, r, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(w, r, "update post", err)
		return
	}

	render.JSON(w, r, PostResponse{Post: post})
}

// DeletePost deletes a post and its content
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.service.DeletePost(r.Context(), slug); err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			writeError(w, r, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(w, r, "delete post", err)
		return
	}

	render.JSON(w, r, map[string]bool{"deleted": true})
}

func (h *PostHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error("post handler error", "op", op, "error", err)
	writeError(w, r, http.StatusInternalServerError, "Internal server error")
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

func isNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// normalizeStatus accepts only the known statuses; anything else is
// treated as unset, matching the permissive admin API contract.
func normalizeStatus(s string) (blog.PostStatus, bool) {
	status := blog.PostStatus(s)
	if status.Valid() {
		return status, true
	}
	return "", false
}
