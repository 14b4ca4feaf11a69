package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, a couple of authors and categories, and a few published
// posts so the public pages have something to show. It is a no-op when
// users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, roles)
		VALUES ($1, $2, $3)
	`, "admin@actuweb.local", string(hash), `["ROLE_USER","ROLE_ADMIN"]`)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	var authorID int64
	err = db.QueryRow(`
		INSERT INTO author (name, email) VALUES ($1, $2) RETURNING id
	`, "Marie Dupont", "marie@actuweb.local").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	var techID int64
	err = db.QueryRow(`
		INSERT INTO category (name, slug, description)
		VALUES ($1, $2, $3) RETURNING id
	`, "Technologie", "technologie", "Actualités technologiques").Scan(&techID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	var postID int64
	err = db.QueryRow(`
		INSERT INTO post (title, content, is_published, author_id)
		VALUES ($1, $2, TRUE, $3) RETURNING id
	`, "Bienvenue sur Actuweb",
		"Premier article publié automatiquement lors de l'initialisation.",
		authorID).Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	if _, err = db.Exec(`
		INSERT INTO post_category (post_id, category_id) VALUES ($1, $2)
	`, postID, techID); err != nil {
		return fmt.Errorf("seed link post category: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@actuweb.local",
		"password", "admin",
	)

	return nil
}
