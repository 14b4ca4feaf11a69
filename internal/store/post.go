// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"actuweb/internal/models"
)

// PostStore manages posts in the database.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postSelect joins the author so every loaded post carries its author
// name without a second query.
const postSelect = `
	SELECT p.id, p.title, p.content, p.is_published, p.author_id,
	       p.created_at, p.updated_at, COALESCE(a.name, '')
	FROM post p
	LEFT JOIN author a ON a.id = p.author_id
`

// scanPost scans a joined row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.IsPublished, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt, &p.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPublishedWithFilters returns published posts, newest first.
// A non-empty search matches the title, content, or author name
// case-insensitively; a non-empty category restricts to posts in the
// category with that exact name. Both filters combine with AND.
func (s *PostStore) FindPublishedWithFilters(search, category string) ([]*models.Post, error) {
	where := []string{"p.is_published"}
	args := []any{}

	if search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(LOWER(p.title) LIKE $%d OR LOWER(p.content) LIKE $%d OR LOWER(COALESCE(a.name, '')) LIKE $%d)",
			n, n, n,
		))
	}

	if category != "" {
		args = append(args, category)
		where = append(where, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM post_category pc
			JOIN category c ON c.id = pc.category_id
			WHERE pc.post_id = p.id AND c.name = $%d
		)`, len(args)))
	}

	query := postSelect + " WHERE " + strings.Join(where, " AND ") + " ORDER BY p.created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadCategories(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Latest returns the n most recent published posts.
func (s *PostStore) Latest(n int) ([]*models.Post, error) {
	rows, err := s.db.Query(postSelect+` WHERE p.is_published ORDER BY p.created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("latest posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// FindPublishedByAuthor returns an author's published posts, newest first.
func (s *PostStore) FindPublishedByAuthor(authorID int64) ([]*models.Post, error) {
	rows, err := s.db.Query(
		postSelect+` WHERE p.is_published AND p.author_id = $1 ORDER BY p.created_at DESC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("posts by author: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// FindByCategory returns all posts in a category, newest first.
func (s *PostStore) FindByCategory(categoryID int64) ([]*models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		JOIN post_category pc ON pc.post_id = p.id
		WHERE pc.category_id = $1
		ORDER BY p.created_at DESC`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("posts by category: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// FindByID retrieves a post with its author name and categories.
// Returns nil if not found.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if err := s.loadCategories([]*models.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new post and attaches its categories in one
// transaction.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create post: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO post (title, content, is_published, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		p.Title, p.Content, p.IsPublished, p.AuthorID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := replaceCategories(tx, p.ID, p.CategoryIDs()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}
	return p, nil
}

// Update modifies an existing post, stamps updated_at, and replaces its
// category set.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin update post: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		UPDATE post
		SET title = $1, content = $2, is_published = $3, author_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		p.Title, p.Content, p.IsPublished, p.AuthorID, p.ID,
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := replaceCategories(tx, p.ID, p.CategoryIDs()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update post: %w", err)
	}
	return p, nil
}

// Delete removes a post. Join rows go with it via the cascade.
func (s *PostStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM post WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// AddCategory attaches a category to a post. Attaching an already
// attached category is a no-op.
func (s *PostStore) AddCategory(postID, categoryID int64) error {
	_, err := s.db.Exec(`
		INSERT INTO post_category (post_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		postID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("add post category: %w", err)
	}
	return nil
}

// RemoveCategory detaches a category from a post. Detaching a category
// that is not attached is a no-op.
func (s *PostStore) RemoveCategory(postID, categoryID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM post_category WHERE post_id = $1 AND category_id = $2`,
		postID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("remove post category: %w", err)
	}
	return nil
}

// replaceCategories rewrites the join rows for a post inside tx.
func replaceCategories(tx *sql.Tx, postID int64, categoryIDs []int64) error {
	if _, err := tx.Exec(`DELETE FROM post_category WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post categories: %w", err)
	}
	for _, cid := range categoryIDs {
		_, err := tx.Exec(`
			INSERT INTO post_category (post_id, category_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			postID, cid,
		)
		if err != nil {
			return fmt.Errorf("attach post category: %w", err)
		}
	}
	return nil
}

// collectPosts drains rows into a slice.
func collectPosts(rows *sql.Rows) ([]*models.Post, error) {
	var posts []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// loadCategories populates Categories on each post with a single query.
func (s *PostStore) loadCategories(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Post, len(posts))
	ids := make([]any, 0, len(posts))
	placeholders := make([]string, 0, len(posts))
	for i, p := range posts {
		byID[p.ID] = p
		ids = append(ids, p.ID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}

	rows, err := s.db.Query(`
		SELECT pc.post_id, c.id, c.name, c.slug, c.description, c.created_at, c.updated_at
		FROM post_category pc
		JOIN category c ON c.id = pc.category_id
		WHERE pc.post_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY c.name`,
		ids...,
	)
	if err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var c models.Category
		err := rows.Scan(&postID, &c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("scan post category: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return rows.Err()
}
