// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

// Author represents a post author. An author owns zero or more posts.
type Author struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`

	// Virtual field populated by store methods.
	PostCount int `json:"post_count"`
}
