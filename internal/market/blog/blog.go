// Package blog serves the marketplace's editorial posts.
package blog

import (
	"context"
	"time"
)

// Post is a single blog article. Content is a free-form document so the
// editorial side can evolve its structure without migrations.
type Post struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   map[string]any `json:"content,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store defines the persistence contract for blog posts.
type Store interface {
	// Insert creates a new post and returns it with its generated id.
	Insert(ctx context.Context, post *Post) (*Post, error)

	// List returns every post, newest first.
	List(ctx context.Context) ([]*Post, error)

	// FindByID returns the post with the given id, or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Post, error)
}
