// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Post represents a publishable article. A post belongs to at most one
// author and carries an owned set of categories: adding an existing
// member is a no-op, as is removing an absent one.
type Post struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsPublished bool       `json:"is_published"`
	AuthorID    *int64     `json:"author_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	// Virtual fields populated by store methods.
	AuthorName string     `json:"author_name,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

// HasCategory reports whether the post's category set contains the
// category with the given ID.
func (p *Post) HasCategory(id int64) bool {
	for _, c := range p.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// AddCategory adds a category to the post's set. Adding a category that
// is already a member leaves the set unchanged.
func (p *Post) AddCategory(c Category) {
	if p.HasCategory(c.ID) {
		return
	}
	p.Categories = append(p.Categories, c)
}

// RemoveCategory removes a category from the post's set by ID.
// Removing a category that is not a member is a no-op.
func (p *Post) RemoveCategory(id int64) {
	for i, c := range p.Categories {
		if c.ID == id {
			p.Categories = append(p.Categories[:i], p.Categories[i+1:]...)
			return
		}
	}
}

// CategoryIDs returns the IDs of the post's categories, in set order.
func (p *Post) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
