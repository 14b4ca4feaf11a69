// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Redis are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"actuweb/internal/database"
	"actuweb/internal/middleware"
	"actuweb/internal/render"
	"actuweb/internal/session"
	"actuweb/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "actuweb")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "actuweb")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedisClient returns a Redis client for handler tests on DB 15.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "flash:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Redis      *redis.Client
	Renderer   *render.Renderer
	Sessions   *session.Store
	Posts      *store.PostStore
	Authors    *store.AuthorStore
	Categories *store.CategoryStore
	Users      *store.UserStore
	Actu       *Actu
	Author     *Author
	Category   *Category
	AdminUser  *AdminUser
	Auth       *Auth
	Public     *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	rc := testRedisClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(rc, false)
	posts := store.NewPostStore(db)
	authors := store.NewAuthorStore(db)
	categories := store.NewCategoryStore(db)
	users := store.NewUserStore(db)

	return &testEnv{
		DB:         db,
		Redis:      rc,
		Renderer:   renderer,
		Sessions:   sessions,
		Posts:      posts,
		Authors:    authors,
		Categories: categories,
		Users:      users,
		Actu:       NewActu(renderer, sessions, posts, authors, categories),
		Author:     NewAuthor(renderer, sessions, authors, posts),
		Category:   NewCategory(renderer, sessions, categories, posts),
		AdminUser:  NewAdminUser(renderer, sessions, users),
		Auth:       NewAuth(renderer, sessions, users),
		Public:     NewPublic(renderer, sessions, posts, categories),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// adminSession creates admin session data for tests.
func adminSession() *session.Data {
	return &session.Data{
		UserID: 1,
		Email:  "admin@actuweb.local",
		Roles:  []string{"ROLE_USER", "ROLE_ADMIN"},
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// formRequest builds a POST request with url-encoded form values.
func formRequest(target string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// uniqueSuffix returns a short random suffix for unique test values.
func uniqueSuffix() string {
	return uuid.NewString()[:8]
}

// cleanPosts removes test posts by title.
func cleanPosts(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM post WHERE title = $1", title)
	}
}

// cleanCategories removes test categories by slug.
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM category WHERE slug = $1", slug)
	}
}

// cleanAuthors removes test authors by name.
func cleanAuthors(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM author WHERE name = $1", name)
	}
}

// cleanUsers removes test users by email.
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}
