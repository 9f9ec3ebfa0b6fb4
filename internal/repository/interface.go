package repository

import (
	"context"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
)

// DB is implemented by every store backend for health checks.
type DB interface {
	Ping(ctx context.Context) error
}

// PostRepository is the persistence interface for blog posts.
// Implementations keep posts newest first and hand out copies.
type PostRepository interface {
	List(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	// Delete removes the post with the given id. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// ContactRepository defines the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context) ([]*model.ContactMessage, error)
}
