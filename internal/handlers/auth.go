package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"actuweb/internal/middleware"
	"actuweb/internal/render"
	"actuweb/internal/session"
	"actuweb/internal/store"
)

// Auth groups the authentication HTTP handlers.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	users    *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{renderer: renderer, sessions: sessions, users: users}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Connexion",
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := a.users.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Connexion",
			Data:  map[string]any{"Error": "Une erreur est survenue. Veuillez réessayer.", "Email": email},
		})
		return
	}

	if user == nil || !a.users.CheckPassword(user, password) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Connexion",
			Data:  map[string]any{"Error": "Email ou mot de passe invalide.", "Email": email},
		})
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and returns to the home page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
