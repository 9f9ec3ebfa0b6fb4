package repository

import (
	"context"
	"path/filepath"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/spf13/afero"
)

// PostsFileName is the document holding the post collection inside the data directory.
const PostsFileName = "posts.json"

// JSONPostRepository is the flat-file implementation of PostRepository.
type JSONPostRepository struct {
	col *jsonCollection[*model.Post]
}

// NewJSONPostRepository creates a JSONPostRepository storing posts in dataDir/posts.json.
func NewJSONPostRepository(fs afero.Fs, dataDir string) *JSONPostRepository {
	return &JSONPostRepository{col: newJSONCollection[*model.Post](fs, filepath.Join(dataDir, PostsFileName))}
}

// Ensure JSONPostRepository implements PostRepository at compile time.
var _ PostRepository = (*JSONPostRepository)(nil)

// List returns all posts, newest first.
func (r *JSONPostRepository) List(ctx context.Context) ([]*model.Post, error) {
	return r.col.read(ctx)
}

// FindByID returns the post with the given id or ErrNotFound.
func (r *JSONPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	posts, err := r.col.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

// Create prepends post to the collection.
func (r *JSONPostRepository) Create(ctx context.Context, post *model.Post) error {
	stored := post.Clone()
	return r.col.update(ctx, func(posts []*model.Post) ([]*model.Post, error) {
		return append([]*model.Post{stored}, posts...), nil
	})
}

// Delete removes every post with the given id. Deleting an unknown id rewrites
// the collection unchanged and succeeds.
func (r *JSONPostRepository) Delete(ctx context.Context, id string) error {
	return r.col.update(ctx, func(posts []*model.Post) ([]*model.Post, error) {
		kept := make([]*model.Post, 0, len(posts))
		for _, p := range posts {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		return kept, nil
	})
}

// Ping reports whether the posts document is readable.
func (r *JSONPostRepository) Ping(ctx context.Context) error {
	return r.col.ping(ctx)
}
