package service

import (
	"context"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
)

// PostService holds the business rules for news posts.
type PostService interface {
	List(ctx context.Context) ([]*model.Post, error)
	// GetByID returns repository.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// Create validates input and stores a new post. Missing title, excerpt or
	// content yields ErrValidation and nothing is stored.
	Create(ctx context.Context, input model.PostInput) (*model.Post, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}
