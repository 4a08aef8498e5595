package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

// RequireAPIKey returns middleware that rejects requests whose API key does
// not match. The key is taken from a Bearer Authorization header, falling
// back to the X-Api-Key header.
func RequireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := providedAPIKey(r)
			if provided == "" || provided != key {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, ErrorResponse{Error: "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func providedAPIKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.Header.Get("X-Api-Key")
}
