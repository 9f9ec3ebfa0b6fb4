package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/repository"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/service"
)

// PostHandler はニュース記事 CRUD の HTTP ハンドラ
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler は PostHandler を生成する
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List は GET /api/posts を処理する
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get は GET /api/posts/{id} を処理する
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.GetByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		slog.Error("get post failed", "error", err, "post_id", r.PathValue("id"))
		writeMessage(w, http.StatusInternalServerError, "Failed to load post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create は POST /api/posts を処理する（管理者のみ）
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PostInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	post, err := h.postService.Create(r.Context(), req)
	if errors.Is(err, service.ErrValidation) {
		writeMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}
	if err != nil {
		slog.Error("create post failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to save post")
		return
	}

	slog.Info("post created", "post_id", post.ID)
	writeJSON(w, http.StatusCreated, post)
}

// Delete は DELETE /api/posts/{id} を処理する（管理者のみ）。存在しない id でも成功を返す
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.postService.Delete(r.Context(), id); err != nil {
		slog.Error("delete post failed", "error", err, "post_id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
