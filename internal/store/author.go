// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements database access for all entities. Each
// entity has its own XxxStore wrapping *sql.DB; lookups return
// (nil, nil) when no row matches so handlers can answer 404 without
// inspecting errors.
package store

import (
	"database/sql"
	"fmt"

	"actuweb/internal/models"
)

// AuthorStore manages authors in the database.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore returns a new AuthorStore.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

const authorColumns = `id, name, email`

// List returns all authors ordered by name, with published post counts.
func (s *AuthorStore) List() ([]models.Author, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.name, a.email,
		       COUNT(p.id) FILTER (WHERE p.is_published) AS post_count
		FROM author a
		LEFT JOIN post p ON p.author_id = a.id
		GROUP BY a.id
		ORDER BY a.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var items []models.Author
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.PostCount); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// FindByID retrieves an author by ID. Returns nil if not found.
func (s *AuthorStore) FindByID(id int64) (*models.Author, error) {
	var a models.Author
	err := s.db.QueryRow(`SELECT `+authorColumns+` FROM author WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return &a, nil
}

// Create inserts a new author and returns it with its generated ID.
func (s *AuthorStore) Create(a *models.Author) (*models.Author, error) {
	err := s.db.QueryRow(`
		INSERT INTO author (name, email)
		VALUES ($1, $2)
		RETURNING `+authorColumns,
		a.Name, a.Email,
	).Scan(&a.ID, &a.Name, &a.Email)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return a, nil
}
