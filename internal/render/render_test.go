// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"actuweb/internal/models"
	"actuweb/internal/session"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNewParsesAllTemplates(t *testing.T) {
	r := newTestRenderer(t)

	for _, name := range []string{
		"home", "actu_index", "actu_show", "actu_form",
		"author_index", "author_show", "author_form",
		"category_index", "category_show", "category_form",
		"admin_users", "admin_user_roles", "login", "error404",
	} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestPageRendersHome(t *testing.T) {
	r := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	r.Page(rr, req, "home", &PageData{
		Title:   "Accueil",
		Section: "home",
		Data: map[string]any{
			"Posts": []*models.Post{
				{ID: 1, Title: "Premier article", Content: "Le contenu de l'article.", CreatedAt: time.Now()},
			},
			"Categories": []*models.Category{
				{ID: 1, Name: "Technologie", Slug: "technologie", PostCount: 1},
			},
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Premier article") {
		t.Error("body should contain post title")
	}
	if !strings.Contains(body, "Technologie") {
		t.Error("body should contain category name")
	}
	if !strings.Contains(body, "Connexion") {
		t.Error("anonymous page should show the login link")
	}
}

func TestPageWritesStatus(t *testing.T) {
	r := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/category/new", nil)
	rr := httptest.NewRecorder()

	r.Page(rr, req, "category_form", &PageData{
		Title:  "Nouvelle catégorie",
		Status: http.StatusUnprocessableEntity,
		Data:   map[string]any{"Error": "Le nom doit contenir au moins 3 caractères."},
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "au moins 3 caractères") {
		t.Error("body should contain the validation error")
	}
}

func TestPageUnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	r.Page(rr, req, "nonexistent", &PageData{})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
}

func TestPageRendersFlashes(t *testing.T) {
	r := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/actu", nil)
	rr := httptest.NewRecorder()

	r.Page(rr, req, "actu_index", &PageData{
		Title: "Actualités",
		Flashes: []session.Flash{
			{Kind: "success", Message: "2 résultat(s) trouvé(s) pour « go »."},
			{Kind: "inconnu", Message: "Texte affiché quand même."},
		},
		Data: map[string]any{"Posts": []*models.Post{}, "Categories": []*models.Category{}},
	})

	body := rr.Body.String()
	if !strings.Contains(body, "alert-success") || !strings.Contains(body, "Succès") {
		t.Error("success flash should use the success style")
	}
	// Unknown kinds fall back to info.
	if !strings.Contains(body, "alert-info") || !strings.Contains(body, "Information") {
		t.Error("unknown flash kind should fall back to info style")
	}
}

func TestNotFound(t *testing.T) {
	r := newTestRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/actu/99999", nil)
	rr := httptest.NewRecorder()
	r.NotFound(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "404") {
		t.Error("body should contain 404")
	}
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		kind      string
		wantClass string
		wantTitle string
	}{
		{"success", "alert-success", "Succès"},
		{"error", "alert-danger", "Erreur"},
		{"warning", "alert-warning", "Attention"},
		{"info", "alert-info", "Information"},
		{"autre", "alert-info", "Information"},
		{"", "alert-info", "Information"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got := StyleFor(tt.kind)
			if got.AlertClass != tt.wantClass {
				t.Errorf("AlertClass: got %q, want %q", got.AlertClass, tt.wantClass)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title: got %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestNavLinks(t *testing.T) {
	paths := func(links []NavLink) []string {
		out := make([]string, len(links))
		for i, l := range links {
			out[i] = l.Path
		}
		return out
	}

	t.Run("anonymous sees public links only", func(t *testing.T) {
		got := paths(NavLinks(nil))
		want := []string{"/", "/actu"}
		if len(got) != len(want) {
			t.Fatalf("links: got %v, want %v", got, want)
		}
	})

	t.Run("authenticated user gains catalog links", func(t *testing.T) {
		sess := &session.Data{UserID: 1, Roles: []string{"ROLE_USER"}}
		got := paths(NavLinks(sess))
		want := []string{"/", "/actu", "/category", "/author"}
		if len(got) != len(want) {
			t.Fatalf("links: got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("link %d: got %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("admin gains management links", func(t *testing.T) {
		sess := &session.Data{UserID: 1, Roles: []string{"ROLE_USER", "ROLE_ADMIN"}}
		got := paths(NavLinks(sess))
		if len(got) != 6 {
			t.Fatalf("links: got %v, want 6 entries", got)
		}
		if got[4] != "/category/new" || got[5] != "/admin/users" {
			t.Errorf("admin links: got %v", got)
		}
	})
}
