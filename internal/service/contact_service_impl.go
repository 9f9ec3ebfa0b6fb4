package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/repository"
	"github.com/google/uuid"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier ContactNotifier // nil = notifications disabled
	now      func() time.Time
	newID    func() string
}

// NewContactService creates a ContactService backed by the given repository.
// notifier may be nil.
func NewContactService(repo repository.ContactRepository, notifier ContactNotifier) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier, now: time.Now, newID: uuid.NewString}
}

// Submit stores a new contact message with status "new" and then hands it to
// the notifier. A notifier failure is logged and does not fail the submission.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if err := requireFields(map[string]string{
		"name":    msg.Name,
		"phone":   msg.Phone,
		"message": msg.Message,
	}, "name", "phone", "message"); err != nil {
		return err
	}

	msg.ID = s.newID()
	msg.Date = FormatContactDate(s.now())
	msg.Status = model.ContactStatusNew
	if err := s.repo.Save(ctx, msg); err != nil {
		return fmt.Errorf("save contact: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, msg.Clone()); err != nil {
			slog.Warn("contact notification failed", "error", err, "contact_id", msg.ID)
		}
	}
	return nil
}

// List returns all contact messages.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx)
}
