package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
)

// Notifier is implemented by Mailer.
type Notifier interface {
	NotifyContact(ctx context.Context, msg *model.ContactMessage) error
}

// Async runs the wrapped notifier on its own goroutine so that callers never
// wait for it. Failures are logged, never returned.
type Async struct {
	next Notifier
	wg   sync.WaitGroup
}

// NewAsync wraps next.
func NewAsync(next Notifier) *Async {
	return &Async{next: next}
}

// NotifyContact schedules the notification and returns immediately.
func (a *Async) NotifyContact(ctx context.Context, msg *model.ContactMessage) error {
	// the request context is cancelled as soon as the response is written
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.next.NotifyContact(ctx, msg); err != nil {
			slog.Warn("contact notification failed", "error", err, "contact_id", msg.ID)
			return
		}
		slog.Info("contact notification sent", "contact_id", msg.ID)
	}()
	return nil
}

// Wait blocks until every scheduled notification has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}
