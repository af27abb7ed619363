package repositories

import (
	"context"
	"errors"

	"firstblog/app/models"
)

// ErrNotFound is returned by every PostRepository when no post has the
// requested identifier.
var ErrNotFound = errors.New("record not found")

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create assigns post.ID and persists the post.
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// List returns every post in the order the store keeps them.
	List(ctx context.Context) ([]*models.Post, error)
}
