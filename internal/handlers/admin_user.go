// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"actuweb/internal/models"
	"actuweb/internal/render"
	"actuweb/internal/session"
	"actuweb/internal/store"
)

// AdminUser groups the admin-only HTTP handlers for user role
// management.
type AdminUser struct {
	renderer *render.Renderer
	sessions *session.Store
	users    *store.UserStore
}

// NewAdminUser creates a new AdminUser handler group.
func NewAdminUser(renderer *render.Renderer, sessions *session.Store, users *store.UserStore) *AdminUser {
	return &AdminUser{renderer: renderer, sessions: sessions, users: users}
}

// List shows all users with their roles.
func (h *AdminUser) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		slog.Error("list users failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "admin_users", &render.PageData{
		Title:   "Gestion des utilisateurs",
		Section: "admin-users",
		Flashes: popFlashes(r, h.sessions),
		Data:    map[string]any{"Users": users},
	})
}

// EditRolesPage renders the role edit form for one user.
func (h *AdminUser) EditRolesPage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	h.renderRolesForm(w, r, user, "", 0)
}

// EditRolesSubmit replaces a user's role set. Unknown role strings are
// rejected; duplicates never reach storage.
func (h *AdminUser) EditRolesSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	roles := r.PostForm["roles"]

	if err := h.users.UpdateRoles(user.ID, roles); err != nil {
		slog.Error("update roles failed", "error", err, "id", user.ID)
		h.renderRolesForm(w, r, user, "Les rôles sélectionnés sont invalides.", http.StatusUnprocessableEntity)
		return
	}

	addFlash(w, r, h.sessions, "success", "Les rôles ont été mis à jour avec succès.")
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// loadUser fetches the user named by the route, rendering 404 when the
// ID is non-numeric or unknown.
func (h *AdminUser) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := pathID(r)
	if !ok {
		h.renderer.NotFound(w, r)
		return nil, false
	}
	user, err := h.users.FindByID(id)
	if err != nil {
		slog.Error("find user failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if user == nil {
		h.renderer.NotFound(w, r)
		return nil, false
	}
	return user, true
}

func (h *AdminUser) renderRolesForm(w http.ResponseWriter, r *http.Request, user *models.User, errMsg string, status int) {
	h.renderer.Page(w, r, "admin_user_roles", &render.PageData{
		Title:   fmt.Sprintf("Rôles de %s", user.Email),
		Section: "admin-users",
		Status:  status,
		Data: map[string]any{
			"User":  user,
			"Error": errMsg,
		},
	})
}
