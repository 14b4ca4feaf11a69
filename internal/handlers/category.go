// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"actuweb/internal/models"
	"actuweb/internal/render"
	"actuweb/internal/session"
	"actuweb/internal/slug"
	"actuweb/internal/store"
)

// Category groups the admin-only HTTP handlers for categories. Route
// guards (authentication and the admin role) are applied by middleware
// in the router.
type Category struct {
	renderer   *render.Renderer
	sessions   *session.Store
	categories *store.CategoryStore
	posts      *store.PostStore
}

// NewCategory creates a new Category handler group.
func NewCategory(renderer *render.Renderer, sessions *session.Store, categories *store.CategoryStore, posts *store.PostStore) *Category {
	return &Category{renderer: renderer, sessions: sessions, categories: categories, posts: posts}
}

// Index lists all categories with their post counts.
func (h *Category) Index(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "category_index", &render.PageData{
		Title:   "Catégories",
		Section: "category",
		Flashes: popFlashes(r, h.sessions),
		Data:    map[string]any{"Categories": cats},
	})
}

// Show displays a category and its posts. 404 if absent.
func (h *Category) Show(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.loadCategory(w, r)
	if !ok {
		return
	}

	posts, err := h.posts.FindByCategory(cat.ID)
	if err != nil {
		slog.Error("posts by category failed", "error", err, "id", cat.ID)
	}

	h.renderer.Page(w, r, "category_show", &render.PageData{
		Title:   cat.Name,
		Section: "category",
		Data: map[string]any{
			"Category": cat,
			"Posts":    posts,
		},
	})
}

// NewPage renders the empty category form.
func (h *Category) NewPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, &models.Category{}, "/category/new", false, "", 0)
}

// NewSubmit validates and persists a new category. Invalid input
// answers 422 with the form re-rendered.
func (h *Category) NewSubmit(w http.ResponseWriter, r *http.Request) {
	cat, errMsg := categoryFromForm(r, &models.Category{})
	if errMsg != "" {
		h.renderForm(w, r, cat, "/category/new", false, errMsg, http.StatusUnprocessableEntity)
		return
	}

	if _, err := h.categories.Create(cat); err != nil {
		slog.Error("create category failed", "error", err)
		h.renderForm(w, r, cat, "/category/new", false,
			"Une erreur est survenue lors de l'enregistrement de la catégorie.", http.StatusUnprocessableEntity)
		return
	}

	addFlash(w, r, h.sessions, "success", "La catégorie a été créée avec succès.")
	http.Redirect(w, r, "/category", http.StatusSeeOther)
}

// EditPage renders the form pre-filled with an existing category.
func (h *Category) EditPage(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.loadCategory(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, cat, fmt.Sprintf("/category/%d/edit", cat.ID), true, "", 0)
}

// EditSubmit validates and persists changes to a category.
func (h *Category) EditSubmit(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.loadCategory(w, r)
	if !ok {
		return
	}
	action := fmt.Sprintf("/category/%d/edit", cat.ID)

	cat, errMsg := categoryFromForm(r, cat)
	if errMsg != "" {
		h.renderForm(w, r, cat, action, true, errMsg, http.StatusUnprocessableEntity)
		return
	}

	if _, err := h.categories.Update(cat); err != nil {
		slog.Error("update category failed", "error", err, "id", cat.ID)
		h.renderForm(w, r, cat, action, true,
			"Une erreur est survenue lors de l'enregistrement de la catégorie.", http.StatusUnprocessableEntity)
		return
	}

	addFlash(w, r, h.sessions, "success", "La catégorie a été modifiée avec succès.")
	http.Redirect(w, r, "/category", http.StatusSeeOther)
}

// Delete removes a category. The CSRF middleware has already rejected
// requests with a missing or forged token, so reaching this handler
// means the form token was valid. Posts keep existing; the join rows
// go with the cascade.
func (h *Category) Delete(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.loadCategory(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(cat.ID); err != nil {
		slog.Error("delete category failed", "error", err, "id", cat.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	addFlash(w, r, h.sessions, "success", "La catégorie a été supprimée avec succès.")
	http.Redirect(w, r, "/category", http.StatusSeeOther)
}

// loadCategory fetches the category named by the route, rendering 404
// when the ID is non-numeric or unknown.
func (h *Category) loadCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, ok := pathID(r)
	if !ok {
		h.renderer.NotFound(w, r)
		return nil, false
	}
	cat, err := h.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if cat == nil {
		h.renderer.NotFound(w, r)
		return nil, false
	}
	return cat, true
}

// categoryFromForm fills cat from the submitted form and validates it.
// A blank slug is generated from the name before validation.
func categoryFromForm(r *http.Request, cat *models.Category) (*models.Category, string) {
	cat.Name = strings.TrimSpace(r.FormValue("name"))
	cat.Slug = strings.TrimSpace(r.FormValue("slug"))
	if cat.Slug == "" {
		cat.Slug = slug.Generate(cat.Name)
	}

	desc := strings.TrimSpace(r.FormValue("description"))
	if desc == "" {
		cat.Description = nil
	} else {
		cat.Description = &desc
	}

	if msg := validateCategory(cat.Name, cat.Slug); msg != "" {
		return cat, msg
	}
	return cat, ""
}

// renderForm renders the shared new/edit category form.
func (h *Category) renderForm(w http.ResponseWriter, r *http.Request, cat *models.Category, action string, isEdit bool, errMsg string, status int) {
	title := "Nouvelle catégorie"
	section := "category-new"
	if isEdit {
		title = "Modifier la catégorie"
		section = "category"
	}

	desc := ""
	if cat.Description != nil {
		desc = *cat.Description
	}

	h.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   title,
		Section: section,
		Status:  status,
		Data: map[string]any{
			"Name":        cat.Name,
			"Slug":        cat.Slug,
			"Description": desc,
			"FormAction":  action,
			"IsEdit":      isEdit,
			"Error":       errMsg,
		},
	})
}
