package handlers

import (
	"log/slog"
	"net/http"

	"actuweb/internal/render"
	"actuweb/internal/session"
	"actuweb/internal/store"
)

// homePostCount is how many recent posts the home page shows.
const homePostCount = 6

// Public groups the handlers for the public pages.
type Public struct {
	renderer   *render.Renderer
	sessions   *session.Store
	posts      *store.PostStore
	categories *store.CategoryStore
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, sessions *session.Store, posts *store.PostStore, categories *store.CategoryStore) *Public {
	return &Public{renderer: renderer, sessions: sessions, posts: posts, categories: categories}
}

// Home renders the landing page with the latest published posts and
// the category list.
func (h *Public) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Latest(homePostCount)
	if err != nil {
		slog.Error("latest posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cats, err := h.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	h.renderer.Page(w, r, "home", &render.PageData{
		Title:   "Accueil",
		Section: "home",
		Flashes: popFlashes(r, h.sessions),
		Data: map[string]any{
			"Posts":      posts,
			"Categories": cats,
		},
	})
}

// NotFound is the router's fallback for unknown paths.
func (h *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.NotFound(w, r)
}
