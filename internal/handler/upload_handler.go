package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/service"
)

// multipartOverhead はファイル前後の境界文字列とパートヘッダの分の余裕
const multipartOverhead = 64 << 10

// UploadHandler は記事画像のアップロードを処理する
type UploadHandler struct {
	media service.MediaService
}

// NewUploadHandler は UploadHandler を生成する
func NewUploadHandler(media service.MediaService) *UploadHandler {
	return &UploadHandler{media: media}
}

// Upload は POST /api/upload を処理する（管理者のみ）。multipart フィールド名は "image"
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+multipartOverhead)
	mr, err := r.MultipartReader()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	// 最初の "image" パートをそのままメディアサービスへ渡す。検証前にディスクへは書かない
	for {
		part, err := mr.NextPart()
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeMessage(w, http.StatusBadRequest, "File too large")
				return
			}
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		if part.FormName() != "image" || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		url, err := h.media.Upload(r.Context(), service.UploadInput{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Size:        -1,
			Body:        part,
		})
		_ = part.Close()

		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeMessage(w, http.StatusBadRequest, "File too large")
			return
		case errors.Is(err, service.ErrInvalidUpload):
			slog.Info("image upload rejected", "error", err)
			writeMessage(w, http.StatusBadRequest, "Invalid file")
			return
		case err != nil:
			slog.Error("image upload failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Upload failed")
			return
		}

		slog.Info("image uploaded", "url", url)
		writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
		return
	}
}
