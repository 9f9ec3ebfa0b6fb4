package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/repository"
	"github.com/google/uuid"
)

// postServiceImpl is the production implementation of PostService.
type postServiceImpl struct {
	repo  repository.PostRepository
	loc   *time.Location
	now   func() time.Time
	newID func() string
}

// NewPostService creates a PostService. Post dates are rendered in loc
// (UTC when nil).
func NewPostService(repo repository.PostRepository, loc *time.Location) PostService {
	if loc == nil {
		loc = time.UTC
	}
	return &postServiceImpl{repo: repo, loc: loc, now: time.Now, newID: uuid.NewString}
}

func (s *postServiceImpl) List(ctx context.Context) ([]*model.Post, error) {
	return s.repo.List(ctx)
}

func (s *postServiceImpl) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *postServiceImpl) Create(ctx context.Context, input model.PostInput) (*model.Post, error) {
	if err := requireFields(map[string]string{
		"title":   input.Title,
		"excerpt": input.Excerpt,
		"content": input.Content,
	}, "title", "excerpt", "content"); err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:       s.newID(),
		Title:    input.Title,
		Excerpt:  input.Excerpt,
		Content:  input.Content,
		Category: input.Category,
		Date:     FormatPostDate(s.now().In(s.loc)),
	}
	if strings.TrimSpace(post.Category) == "" {
		post.Category = model.DefaultPostCategory
	}
	if img := strings.TrimSpace(input.Image); img != "" {
		post.Image = &img
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

// requireFields returns ErrValidation naming the first blank field in order.
func requireFields(values map[string]string, order ...string) error {
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}
	return nil
}
