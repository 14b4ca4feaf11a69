// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"actuweb/internal/models"
	"actuweb/internal/render"
	"actuweb/internal/session"
	"actuweb/internal/store"
)

// Actu groups the HTTP handlers for news posts.
type Actu struct {
	renderer   *render.Renderer
	sessions   *session.Store
	posts      *store.PostStore
	authors    *store.AuthorStore
	categories *store.CategoryStore
}

// NewActu creates a new Actu handler group.
func NewActu(renderer *render.Renderer, sessions *session.Store, posts *store.PostStore, authors *store.AuthorStore, categories *store.CategoryStore) *Actu {
	return &Actu{
		renderer:   renderer,
		sessions:   sessions,
		posts:      posts,
		authors:    authors,
		categories: categories,
	}
}

// listingMessage returns the contextual status flash for the listing,
// or an empty message when none applies.
func listingMessage(count int, search, category string) (kind, message string) {
	if count == 0 {
		switch {
		case search != "" && category != "":
			return "info", fmt.Sprintf("Aucun résultat pour « %s » dans la catégorie « %s ».", search, category)
		case search != "":
			return "info", fmt.Sprintf("Aucun résultat pour « %s ».", search)
		case category != "":
			return "info", fmt.Sprintf("Aucun article dans la catégorie « %s ».", category)
		default:
			return "info", "Aucun article publié pour le moment."
		}
	}
	if search != "" {
		return "success", fmt.Sprintf("%d résultat(s) trouvé(s) pour « %s ».", count, search)
	}
	return "", ""
}

// popFlashes drains the pending flash queue, logging failures rather
// than breaking the page.
func popFlashes(r *http.Request, sessions *session.Store) []session.Flash {
	flashes, err := sessions.PopFlashes(r.Context(), r)
	if err != nil {
		slog.Error("pop flashes failed", "error", err)
		return nil
	}
	return flashes
}

// addFlash queues a flash, logging failures.
func addFlash(w http.ResponseWriter, r *http.Request, sessions *session.Store, kind, message string) {
	if err := sessions.AddFlash(r.Context(), w, r, kind, message); err != nil {
		slog.Error("add flash failed", "error", err)
	}
}

// Index lists published posts, optionally filtered by ?search= and
// ?category=, and prepends the contextual status message.
func (h *Actu) Index(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	posts, err := h.posts.FindPublishedWithFilters(search, category)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cats, err := h.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	flashes := popFlashes(r, h.sessions)
	if kind, msg := listingMessage(len(posts), search, category); msg != "" {
		flashes = append(flashes, session.Flash{Kind: kind, Message: msg})
	}

	h.renderer.Page(w, r, "actu_index", &render.PageData{
		Title:   "Actualités",
		Section: "actu",
		Flashes: flashes,
		Data: map[string]any{
			"Posts":            posts,
			"Categories":       cats,
			"Search":           search,
			"SelectedCategory": category,
		},
	})
}

// Show displays a single post. Absent or non-numeric IDs answer 404.
func (h *Actu) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.renderer.NotFound(w, r)
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		h.renderer.NotFound(w, r)
		return
	}

	recent, err := h.posts.Latest(5)
	if err != nil {
		slog.Error("latest posts failed", "error", err)
	}

	h.renderer.Page(w, r, "actu_show", &render.PageData{
		Title:   post.Title,
		Section: "actu",
		Flashes: popFlashes(r, h.sessions),
		Data: map[string]any{
			"Post":        post,
			"RecentPosts": recent,
		},
	})
}

// Flashes for the two re-render paths. Field validation warns about the
// form; a storage failure carries the generic error wording instead.
var (
	flashFormErrors   = session.Flash{Kind: "warning", Message: "Le formulaire contient des erreurs."}
	flashStorageError = session.Flash{Kind: "error", Message: "Une erreur est survenue. Veuillez réessayer."}
)

// CreatePage renders the empty post form.
func (h *Actu) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, &models.Post{}, "/actu/create", false, "", session.Flash{}, 0)
}

// CreateSubmit validates and persists a new post.
func (h *Actu) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	post, errMsg := h.postFromForm(r, &models.Post{})
	if errMsg != "" {
		h.renderForm(w, r, post, "/actu/create", false, errMsg, flashFormErrors, 0)
		return
	}

	created, err := h.posts.Create(post)
	if err != nil {
		slog.Error("create post failed", "error", err)
		h.renderForm(w, r, post, "/actu/create", false,
			"Une erreur est survenue lors de l'enregistrement de l'article.", flashStorageError, 0)
		return
	}

	addFlash(w, r, h.sessions, "success", publishMessage(created.IsPublished))
	http.Redirect(w, r, fmt.Sprintf("/actu/%d", created.ID), http.StatusSeeOther)
}

// EditPage renders the form pre-filled with an existing post.
func (h *Actu) EditPage(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, post, fmt.Sprintf("/actu/%d/edit", post.ID), true, "", session.Flash{}, 0)
}

// EditSubmit validates and persists changes to an existing post.
// updated_at is only stamped on the valid-persisted path.
func (h *Actu) EditSubmit(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	action := fmt.Sprintf("/actu/%d/edit", post.ID)

	post, errMsg := h.postFromForm(r, post)
	if errMsg != "" {
		h.renderForm(w, r, post, action, true, errMsg, flashFormErrors, 0)
		return
	}

	updated, err := h.posts.Update(post)
	if err != nil || updated == nil {
		slog.Error("update post failed", "error", err, "id", post.ID)
		h.renderForm(w, r, post, action, true,
			"Une erreur est survenue lors de l'enregistrement de l'article.", flashStorageError, 0)
		return
	}

	addFlash(w, r, h.sessions, "success", publishMessage(updated.IsPublished))
	http.Redirect(w, r, fmt.Sprintf("/actu/%d", updated.ID), http.StatusSeeOther)
}

// Delete removes a post and returns to the listing.
func (h *Actu) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(post.ID); err != nil {
		slog.Error("delete post failed", "error", err, "id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	addFlash(w, r, h.sessions, "success", "L'article a été supprimé avec succès.")
	http.Redirect(w, r, "/actu", http.StatusSeeOther)
}

// publishMessage picks the success wording based on publication state.
func publishMessage(published bool) string {
	if published {
		return "L'article a été enregistré et publié avec succès."
	}
	return "L'article a été enregistré comme brouillon."
}

// loadPost fetches the post named by the route, rendering 404 when the
// ID is non-numeric or unknown.
func (h *Actu) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, ok := pathID(r)
	if !ok {
		h.renderer.NotFound(w, r)
		return nil, false
	}
	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if post == nil {
		h.renderer.NotFound(w, r)
		return nil, false
	}
	return post, true
}

// postFromForm fills post from the submitted form and validates it.
// The partially filled post is always returned so invalid submissions
// re-render with the user's input intact.
func (h *Actu) postFromForm(r *http.Request, post *models.Post) (*models.Post, string) {
	post.Title = strings.TrimSpace(r.FormValue("title"))
	post.Content = strings.TrimSpace(r.FormValue("content"))
	post.IsPublished = r.FormValue("is_published") != ""

	if msg := validatePost(post.Title, post.Content); msg != "" {
		return post, msg
	}

	post.AuthorID = nil
	if raw := r.FormValue("author_id"); raw != "" {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return post, "L'auteur sélectionné est invalide."
		}
		author, err := h.authors.FindByID(authorID)
		if err != nil {
			slog.Error("find author failed", "error", err, "id", authorID)
			return post, "Une erreur est survenue lors de l'enregistrement de l'article."
		}
		if author == nil {
			return post, "L'auteur sélectionné n'existe pas."
		}
		post.AuthorID = &author.ID
	}

	post.Categories = nil
	if err := r.ParseForm(); err == nil {
		for _, raw := range r.PostForm["categories"] {
			cid, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				continue
			}
			cat, err := h.categories.FindByID(cid)
			if err != nil || cat == nil {
				continue
			}
			post.AddCategory(*cat)
		}
	}

	return post, ""
}

// renderForm renders the shared create/edit form. errMsg is shown inline
// above the fields; flash (if its Kind is set) is shown in the flash area
// so callers pick the warning or error wording; status lets callers pick
// a non-200 response.
func (h *Actu) renderForm(w http.ResponseWriter, r *http.Request, post *models.Post, action string, isEdit bool, errMsg string, flash session.Flash, status int) {
	authors, err := h.authors.List()
	if err != nil {
		slog.Error("list authors failed", "error", err)
	}
	cats, err := h.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	title := "Nouvel article"
	if isEdit {
		title = "Modifier l'article"
	}

	var flashes []session.Flash
	if flash.Kind != "" {
		flashes = append(flashes, flash)
	}

	h.renderer.Page(w, r, "actu_form", &render.PageData{
		Title:   title,
		Section: "actu",
		Status:  status,
		Flashes: flashes,
		Data: map[string]any{
			"Post":       post,
			"Authors":    authors,
			"Categories": cats,
			"FormAction": action,
			"IsEdit":     isEdit,
			"Error":      errMsg,
		},
	})
}
