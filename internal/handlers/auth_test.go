package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"actuweb/internal/models"
	"actuweb/internal/session"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)

	email := "connexion-" + uniqueSuffix() + "@actuweb.local"
	t.Cleanup(func() { cleanUsers(t, env.DB, email) })

	if _, err := env.Users.Create(email, "motdepasse", []string{models.RoleUser}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", "motdepasse")

	rr := httptest.NewRecorder()
	env.Auth.LoginSubmit(rr, formRequest("/login", form))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303 (body: %s)", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect: got %q, want /", loc)
	}

	// The session cookie resolves to valid session data.
	getReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		getReq.AddCookie(c)
	}
	data, err := env.Sessions.Get(getReq.Context(), getReq)
	if err != nil {
		t.Fatalf("session get: %v", err)
	}
	if data == nil || data.Email != email {
		t.Errorf("session data: got %+v, want email %q", data, email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	email := "rate-" + uniqueSuffix() + "@actuweb.local"
	t.Cleanup(func() { cleanUsers(t, env.DB, email) })

	if _, err := env.Users.Create(email, "motdepasse", []string{models.RoleUser}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", "mauvais")

	rr := httptest.NewRecorder()
	env.Auth.LoginSubmit(rr, formRequest("/login", form))

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200 re-render", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Email ou mot de passe invalide.") {
		t.Error("wrong password should show the generic error")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("email", "personne-"+uniqueSuffix()+"@actuweb.local")
	form.Set("password", "motdepasse")

	rr := httptest.NewRecorder()
	env.Auth.LoginSubmit(rr, formRequest("/login", form))

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200 re-render", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Email ou mot de passe invalide.") {
		t.Error("unknown email should show the same generic error as a wrong password")
	}
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req = req.WithContext(ctxWithSession(req.Context(), &session.Data{UserID: 1, Email: "deja@actuweb.local", Roles: []string{models.RoleUser}}))
	rr := httptest.NewRecorder()
	env.Auth.LoginPage(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want 303", rr.Code)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	email := "sortie-" + uniqueSuffix() + "@actuweb.local"
	t.Cleanup(func() { cleanUsers(t, env.DB, email) })

	user, err := env.Users.Create(email, "motdepasse", []string{models.RoleUser})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Log in to obtain a session cookie.
	loginRR := httptest.NewRecorder()
	_, err = env.Sessions.Create(context.Background(), loginRR, &session.Data{
		UserID: user.ID, Email: user.Email, Roles: user.Roles,
	})
	if err != nil {
		t.Fatalf("session create: %v", err)
	}

	logoutReq := formRequest("/logout", url.Values{})
	for _, c := range loginRR.Result().Cookies() {
		logoutReq.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	env.Auth.Logout(rr, logoutReq)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rr.Code)
	}

	// The session is gone.
	checkReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range loginRR.Result().Cookies() {
		checkReq.AddCookie(c)
	}
	data, err := env.Sessions.Get(checkReq.Context(), checkReq)
	if err != nil {
		t.Fatalf("session get: %v", err)
	}
	if data != nil {
		t.Errorf("session should be destroyed, got %+v", data)
	}
}
