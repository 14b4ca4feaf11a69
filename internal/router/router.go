// Package router sets up all HTTP routes and middleware chains for the
// site. Public pages, the category admin, and the user admin get their
// own middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"actuweb/internal/handlers"
	"actuweb/internal/middleware"
	"actuweb/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	sessionStore *session.Store,
	public *handlers.Public,
	actu *handlers.Actu,
	author *handlers.Author,
	category *handlers.Category,
	adminUser *handlers.AdminUser,
	auth *handlers.Auth,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no CSRF.
	r.Get("/health", healthHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Public pages.
		r.Get("/", public.Home)
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// News posts are open, including the forms.
		r.Route("/actu", func(r chi.Router) {
			r.Get("/", actu.Index)
			r.Get("/create", actu.CreatePage)
			r.Post("/create", actu.CreateSubmit)
			r.Get("/{id}", actu.Show)
			r.Get("/{id}/edit", actu.EditPage)
			r.Post("/{id}/edit", actu.EditSubmit)
			r.Post("/{id}/delete", actu.Delete)
		})

		// Authors.
		r.Route("/author", func(r chi.Router) {
			r.Get("/", author.Index)
			r.Get("/create", author.CreatePage)
			r.Post("/create", author.CreateSubmit)
			r.Get("/{id}", author.Show)
		})

		// Category administration is for authenticated admins only.
		r.Route("/category", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Get("/", category.Index)
			r.Get("/new", category.NewPage)
			r.Post("/new", category.NewSubmit)
			r.Get("/{id}", category.Show)
			r.Get("/{id}/edit", category.EditPage)
			r.Post("/{id}/edit", category.EditSubmit)
			r.Post("/{id}/delete", category.Delete)
		})

		// User role administration.
		r.Route("/admin/users", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Get("/", adminUser.List)
			r.Get("/{id}/edit-roles", adminUser.EditRolesPage)
			r.Post("/{id}/edit-roles", adminUser.EditRolesSubmit)
		})
	})

	r.NotFound(public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
