package service

import (
	"context"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and stores a new contact message. The ID, Date and
	// Status fields are populated by the implementation.
	Submit(ctx context.Context, msg *model.ContactMessage) error

	// List returns every contact message, newest first.
	List(ctx context.Context) ([]*model.ContactMessage, error)
}

// ContactNotifier is told about every stored contact message.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg *model.ContactMessage) error
}
