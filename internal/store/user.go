// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"actuweb/internal/models"
)

// UserStore handles all user-related database operations. Roles are
// stored as a JSONB array and decoded on load.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// scanUser decodes a user row, unmarshalling the roles column.
func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var roles []byte
	if err := scanner.Scan(&u.ID, &u.Email, &u.PasswordHash, &roles); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roles, &u.Roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return u, nil
}

// FindByEmail retrieves a user by email address. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT id, email, password_hash, roles FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by ID. Returns nil if not found.
func (s *UserStore) FindByID(id int64) (*models.User, error) {
	row := s.db.QueryRow(`SELECT id, email, password_hash, roles FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// List returns all users ordered by email.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT id, email, password_hash, roles FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password and the
// given roles.
func (s *UserStore) Create(email, password string, roles []string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{Email: email, PasswordHash: string(hash)}
	if err := u.SetRoles(roles); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(u.Roles)
	if err != nil {
		return nil, fmt.Errorf("encode roles: %w", err)
	}

	err = s.db.QueryRow(`
		INSERT INTO users (email, password_hash, roles)
		VALUES ($1, $2, $3)
		RETURNING id`,
		u.Email, u.PasswordHash, encoded,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateRoles replaces a user's role set.
func (s *UserStore) UpdateRoles(id int64, roles []string) error {
	u := &models.User{}
	if err := u.SetRoles(roles); err != nil {
		return err
	}

	encoded, err := json.Marshal(u.Roles)
	if err != nil {
		return fmt.Errorf("encode roles: %w", err)
	}

	_, err = s.db.Exec(`UPDATE users SET roles = $1 WHERE id = $2`, encoded, id)
	if err != nil {
		return fmt.Errorf("update roles: %w", err)
	}
	return nil
}

// CheckPassword compares the stored hash against a candidate password.
func (s *UserStore) CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
