// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"actuweb/internal/database"
	"actuweb/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "actuweb")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "actuweb")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// uniqueSuffix returns a short random suffix so parallel test runs
// never collide on unique columns.
func uniqueSuffix() string {
	return uuid.NewString()[:8]
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanAuthors removes test authors by name. Call in t.Cleanup().
func cleanAuthors(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM author WHERE name = $1", name)
	}
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM category WHERE slug = $1", slug)
	}
}

// cleanPosts removes test posts by title. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM post WHERE title = $1", title)
	}
}

// mustCreatePost inserts a post through the store, failing the test on error.
func mustCreatePost(t *testing.T, s *PostStore, p *models.Post) *models.Post {
	t.Helper()
	created, err := s.Create(p)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return created
}

// mustCreateCategory inserts a category through the store.
func mustCreateCategory(t *testing.T, s *CategoryStore, name, slug string) *models.Category {
	t.Helper()
	created, err := s.Create(&models.Category{Name: name, Slug: slug})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return created
}

// mustCreateAuthor inserts an author through the store.
func mustCreateAuthor(t *testing.T, s *AuthorStore, name string) *models.Author {
	t.Helper()
	created, err := s.Create(&models.Author{Name: name})
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	return created
}
