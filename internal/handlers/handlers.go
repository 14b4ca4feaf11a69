// Package handlers contains the HTTP handler groups for the site:
// public pages, posts, authors, category administration, user role
// administration, and authentication.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pathID extracts the {id} route parameter as an int64. The second
// return value is false for missing or non-numeric values, which
// handlers answer with 404.
func pathID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
