package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"actuweb/internal/models"
	"actuweb/internal/render"
	"actuweb/internal/session"
	"actuweb/internal/store"
)

// Author groups the HTTP handlers for authors.
type Author struct {
	renderer *render.Renderer
	sessions *session.Store
	authors  *store.AuthorStore
	posts    *store.PostStore
}

// NewAuthor creates a new Author handler group.
func NewAuthor(renderer *render.Renderer, sessions *session.Store, authors *store.AuthorStore, posts *store.PostStore) *Author {
	return &Author{renderer: renderer, sessions: sessions, authors: authors, posts: posts}
}

// Index lists all authors with their published post counts.
func (h *Author) Index(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authors.List()
	if err != nil {
		slog.Error("list authors failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "author_index", &render.PageData{
		Title:   "Auteurs",
		Section: "author",
		Flashes: popFlashes(r, h.sessions),
		Data:    map[string]any{"Authors": authors},
	})
}

// Show displays an author and their published posts. 404 if absent.
func (h *Author) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.renderer.NotFound(w, r)
		return
	}

	author, err := h.authors.FindByID(id)
	if err != nil {
		slog.Error("find author failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if author == nil {
		h.renderer.NotFound(w, r)
		return
	}

	posts, err := h.posts.FindPublishedByAuthor(author.ID)
	if err != nil {
		slog.Error("posts by author failed", "error", err, "id", id)
	}

	h.renderer.Page(w, r, "author_show", &render.PageData{
		Title:   author.Name,
		Section: "author",
		Data: map[string]any{
			"Author": author,
			"Posts":  posts,
		},
	})
}

// CreatePage renders the empty author form.
func (h *Author) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "", "", "")
}

// CreateSubmit validates and persists a new author.
func (h *Author) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))

	if msg := validateAuthor(name); msg != "" {
		h.renderForm(w, r, name, email, msg)
		return
	}

	author := &models.Author{Name: name}
	if email != "" {
		author.Email = &email
	}

	if _, err := h.authors.Create(author); err != nil {
		slog.Error("create author failed", "error", err)
		h.renderForm(w, r, name, email, "Une erreur est survenue lors de l'enregistrement de l'auteur.")
		return
	}

	addFlash(w, r, h.sessions, "success", "L'auteur a été créé avec succès.")
	http.Redirect(w, r, "/author", http.StatusSeeOther)
}

func (h *Author) renderForm(w http.ResponseWriter, r *http.Request, name, email, errMsg string) {
	h.renderer.Page(w, r, "author_form", &render.PageData{
		Title:   "Nouvel auteur",
		Section: "author",
		Data: map[string]any{
			"Name":  name,
			"Email": email,
			"Error": errMsg,
		},
	})
}
