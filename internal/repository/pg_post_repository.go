package repository

import (
	"context"
	"errors"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgPostRepository is the PostgreSQL implementation of PostRepository.
// Display order follows the seq column, which grows with every insert.
type PgPostRepository struct {
	pool *pgxpool.Pool
}

// NewPgPostRepository creates a PgPostRepository backed by the given pool.
func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

// Ensure PgPostRepository implements PostRepository at compile time.
var _ PostRepository = (*PgPostRepository)(nil)

const postColumns = `id, title, excerpt, content, category, image, date_label`

func scanPost(row pgx.Row) (*model.Post, error) {
	var p model.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Category, &p.Image, &p.Date); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all posts, newest first.
func (r *PgPostRepository) List(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// FindByID returns the post with the given id or ErrNotFound.
func (r *PgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Create inserts a post; it becomes the first row of List.
func (r *PgPostRepository) Create(ctx context.Context, post *model.Post) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (id, title, excerpt, content, category, image, date_label)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		post.ID, post.Title, post.Excerpt, post.Content, post.Category, post.Image, post.Date,
	)
	return err
}

// Delete removes the post if present.
func (r *PgPostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

// Ping checks the database connection.
func (r *PgPostRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
