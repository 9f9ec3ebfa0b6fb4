package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/service"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/storage"
	"github.com/spf13/afero"
)

type mockMediaService struct {
	uploadFunc func(ctx context.Context, in service.UploadInput) (string, error)
}

func (m *mockMediaService) Upload(ctx context.Context, in service.UploadInput) (string, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, in)
	}
	return "/uploads/image-1-000000001.png", nil
}

// newUploadRequest builds a multipart request with one file part.
func newUploadRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(data)
	}
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	var got service.UploadInput
	var gotBody []byte
	h := NewUploadHandler(&mockMediaService{
		uploadFunc: func(ctx context.Context, in service.UploadInput) (string, error) {
			got = in
			gotBody, _ = io.ReadAll(in.Body)
			return "/uploads/image-1-000000001.png", nil
		},
	})

	req := newUploadRequest(t, "image", "photo.PNG", "image/png", []byte("png-bytes"))
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["imageUrl"] != "/uploads/image-1-000000001.png" {
		t.Errorf("unexpected imageUrl %q", body["imageUrl"])
	}
	if got.Filename != "photo.PNG" || got.ContentType != "image/png" {
		t.Errorf("unexpected input %+v", got)
	}
	if string(gotBody) != "png-bytes" {
		t.Errorf("unexpected body %q", gotBody)
	}
}

func TestUploadHandler_Upload_NoFile(t *testing.T) {
	h := NewUploadHandler(&mockMediaService{
		uploadFunc: func(ctx context.Context, in service.UploadInput) (string, error) {
			t.Error("media service must not be called without a file")
			return "", nil
		},
	})

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"empty multipart", newUploadRequest(t, "", "", "", nil)},
		{"wrong field", newUploadRequest(t, "file", "a.png", "image/png", []byte("x"))},
		{"not multipart", httptest.NewRequest("POST", "/api/upload", bytes.NewBufferString("raw"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Upload(rec, tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestUploadHandler_Upload_InvalidUpload(t *testing.T) {
	h := NewUploadHandler(&mockMediaService{
		uploadFunc: func(ctx context.Context, in service.UploadInput) (string, error) {
			return "", fmt.Errorf("%w: only image files are allowed", service.ErrInvalidUpload)
		},
	})

	req := newUploadRequest(t, "image", "notes.txt", "text/plain", []byte("hello"))
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["message"] != "Invalid file" {
		t.Errorf("unexpected message %q", body["message"])
	}
}

func TestUploadHandler_Upload_BodyTooLarge(t *testing.T) {
	h := NewUploadHandler(&mockMediaService{
		uploadFunc: func(ctx context.Context, in service.UploadInput) (string, error) {
			// drain like the real service would
			if _, err := io.Copy(io.Discard, in.Body); err != nil {
				return "", err
			}
			return "/uploads/x.png", nil
		},
	})

	big := bytes.Repeat([]byte{0xff}, service.MaxUploadSize+multipartOverhead+1)
	req := newUploadRequest(t, "image", "big.png", "image/png", big)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestUploadHandler_Upload_StorageError(t *testing.T) {
	h := NewUploadHandler(&mockMediaService{
		uploadFunc: func(ctx context.Context, in service.UploadInput) (string, error) {
			return "", errors.New("disk full")
		},
	})

	req := newUploadRequest(t, "image", "a.png", "image/png", []byte("x"))
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestUploadHandler_Upload_TruncatedBody(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := NewUploadHandler(service.NewMediaService(storage.NewLocalStorage(fs, "uploads", "/uploads")))

	// no closing boundary: the body ends in the middle of the image part
	const boundary = "xYzBoundary"
	body := "--" + boundary + "\r\n" +
		`Content-Disposition: form-data; name="image"; filename="cut.png"` + "\r\n" +
		"Content-Type: image/png\r\n\r\n" +
		"partial-png-bytes"
	req := httptest.NewRequest("POST", "/api/upload", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if entries, _ := afero.ReadDir(fs, "uploads"); len(entries) != 0 {
		t.Errorf("truncated upload left %d files", len(entries))
	}
}
