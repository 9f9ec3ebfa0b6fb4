package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/repository"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/service"
)

// mockPostService is a function-field stub of PostService.
type mockPostService struct {
	listFunc    func(ctx context.Context) ([]*model.Post, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Post, error)
	createFunc  func(ctx context.Context, input model.PostInput) (*model.Post, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockPostService) List(ctx context.Context) ([]*model.Post, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockPostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockPostService) Create(ctx context.Context, input model.PostInput) (*model.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return &model.Post{ID: "new", Title: input.Title}, nil
}

func (m *mockPostService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func postMux(h *PostHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", h.List)
	mux.HandleFunc("GET /api/posts/{id}", h.Get)
	mux.HandleFunc("POST /api/posts", h.Create)
	mux.HandleFunc("DELETE /api/posts/{id}", h.Delete)
	return mux
}

func TestPostHandler_List(t *testing.T) {
	want := []*model.Post{{ID: "2", Title: "B"}, {ID: "1", Title: "A"}}
	h := NewPostHandler(&mockPostService{
		listFunc: func(ctx context.Context) ([]*model.Post, error) {
			return want, nil
		},
	})

	req := httptest.NewRequest("GET", "/api/posts", nil)
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []*model.Post
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
		t.Errorf("unexpected posts %+v", got)
	}
}

func TestPostHandler_List_EmptyIsArray(t *testing.T) {
	h := NewPostHandler(&mockPostService{})

	req := httptest.NewRequest("GET", "/api/posts", nil)
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected [], got %q", rec.Body.String())
	}
}

func TestPostHandler_List_StorageError(t *testing.T) {
	h := NewPostHandler(&mockPostService{
		listFunc: func(ctx context.Context) ([]*model.Post, error) {
			return nil, errors.New("permission denied")
		},
	})

	req := httptest.NewRequest("GET", "/api/posts", nil)
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestPostHandler_Get_NotFound(t *testing.T) {
	h := NewPostHandler(&mockPostService{})

	req := httptest.NewRequest("GET", "/api/posts/nonexistent", nil)
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["message"] != "Not found" {
		t.Errorf("expected message=Not found, got %q", body["message"])
	}
}

func TestPostHandler_Get_Success(t *testing.T) {
	var gotID string
	h := NewPostHandler(&mockPostService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Post, error) {
			gotID = id
			return &model.Post{ID: id, Title: "Hello"}, nil
		},
	})

	req := httptest.NewRequest("GET", "/api/posts/abc-123", nil)
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "abc-123" {
		t.Errorf("expected id abc-123, got %q", gotID)
	}
	var p model.Post
	_ = json.NewDecoder(rec.Body).Decode(&p)
	if p.Title != "Hello" {
		t.Errorf("unexpected post %+v", p)
	}
}

func TestPostHandler_Create_Success(t *testing.T) {
	var captured model.PostInput
	h := NewPostHandler(&mockPostService{
		createFunc: func(ctx context.Context, input model.PostInput) (*model.Post, error) {
			captured = input
			return &model.Post{ID: "p1", Title: input.Title, Category: model.DefaultPostCategory}, nil
		},
	})

	body := `{"title":"T","excerpt":"E","content":"C","image":"/uploads/x.png"}`
	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if captured.Title != "T" || captured.Excerpt != "E" || captured.Content != "C" || captured.Image != "/uploads/x.png" {
		t.Errorf("unexpected input forwarded: %+v", captured)
	}
	var p model.Post
	_ = json.NewDecoder(rec.Body).Decode(&p)
	if p.ID != "p1" {
		t.Errorf("expected created post in body, got %+v", p)
	}
}

func TestPostHandler_Create_ValidationError(t *testing.T) {
	h := NewPostHandler(&mockPostService{
		createFunc: func(ctx context.Context, input model.PostInput) (*model.Post, error) {
			return nil, fmt.Errorf("%w: title is required", service.ErrValidation)
		},
	})

	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"excerpt":"E","content":"C"}`))
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["message"] != "Missing fields" {
		t.Errorf("expected message=Missing fields, got %q", body["message"])
	}
}

func TestPostHandler_Create_InvalidJSON(t *testing.T) {
	h := NewPostHandler(&mockPostService{
		createFunc: func(ctx context.Context, input model.PostInput) (*model.Post, error) {
			t.Error("service must not be called for malformed JSON")
			return nil, nil
		},
	})

	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader("{bad json"))
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestPostHandler_Create_StorageError(t *testing.T) {
	h := NewPostHandler(&mockPostService{
		createFunc: func(ctx context.Context, input model.PostInput) (*model.Post, error) {
			return nil, errors.New("disk full")
		},
	})

	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"title":"T","excerpt":"E","content":"C"}`))
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestPostHandler_Delete_Success(t *testing.T) {
	var deleted string
	h := NewPostHandler(&mockPostService{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	req := httptest.NewRequest("DELETE", "/api/posts/p1", nil)
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if deleted != "p1" {
		t.Errorf("expected p1 deleted, got %q", deleted)
	}
	var body map[string]bool
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if !body["ok"] {
		t.Errorf("expected {ok:true}, got %v", body)
	}
}

func TestPostHandler_Delete_StorageError(t *testing.T) {
	h := NewPostHandler(&mockPostService{
		deleteFunc: func(ctx context.Context, id string) error {
			return errors.New("disk full")
		},
	})

	req := httptest.NewRequest("DELETE", "/api/posts/p1", nil)
	rec := httptest.NewRecorder()
	postMux(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
