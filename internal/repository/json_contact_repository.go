package repository

import (
	"context"
	"path/filepath"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/spf13/afero"
)

// ContactsFileName is the document holding contact messages inside the data directory.
const ContactsFileName = "contacts.json"

// JSONContactRepository is the flat-file implementation of ContactRepository.
type JSONContactRepository struct {
	col *jsonCollection[*model.ContactMessage]
}

// NewJSONContactRepository creates a JSONContactRepository storing messages in dataDir/contacts.json.
func NewJSONContactRepository(fs afero.Fs, dataDir string) *JSONContactRepository {
	return &JSONContactRepository{
		col: newJSONCollection[*model.ContactMessage](fs, filepath.Join(dataDir, ContactsFileName)),
	}
}

// Ensure JSONContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*JSONContactRepository)(nil)

// Save prepends msg to the inbox.
func (r *JSONContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	stored := msg.Clone()
	return r.col.update(ctx, func(msgs []*model.ContactMessage) ([]*model.ContactMessage, error) {
		return append([]*model.ContactMessage{stored}, msgs...), nil
	})
}

// List returns all contact messages, newest first.
func (r *JSONContactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return r.col.read(ctx)
}

// Ping reports whether the contacts document is readable.
func (r *JSONContactRepository) Ping(ctx context.Context) error {
	return r.col.ping(ctx)
}
