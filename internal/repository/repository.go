package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
)

// NewPool opens a PostgreSQL pool and verifies the connection.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	return pool, nil
}

// Stores groups the two collections behind one backend.
type Stores struct {
	Posts    PostRepository
	Contacts ContactRepository
	DB       DB

	closeFn func()
}

// Close releases backend resources. It is a no-op for the flat-file backend.
func (s *Stores) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// OpenJSON returns stores keeping posts.json and contacts.json in dataDir.
// Nothing touches the disk until the first request.
func OpenJSON(fs afero.Fs, dataDir string) *Stores {
	posts := NewJSONPostRepository(fs, dataDir)
	contacts := NewJSONContactRepository(fs, dataDir)
	return &Stores{Posts: posts, Contacts: contacts, DB: pingers{posts, contacts}}
}

// OpenPostgres returns stores backed by the posts and contact_messages tables.
func OpenPostgres(ctx context.Context, connString string) (*Stores, error) {
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Posts:    NewPgPostRepository(pool),
		Contacts: NewPgContactRepository(pool),
		DB:       pool,
		closeFn:  pool.Close,
	}, nil
}

type pingers []DB

func (p pingers) Ping(ctx context.Context) error {
	for _, db := range p {
		if err := db.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
