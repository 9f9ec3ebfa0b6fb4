package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/storage"
)

// MaxUploadSize is the largest accepted image payload.
const MaxUploadSize = 5 << 20 // 5 MiB

// UploadInput is one uploaded file as received from the client.
type UploadInput struct {
	Filename    string // original client filename, only its extension is kept
	ContentType string
	Size        int64 // declared size, -1 when unknown
	Body        io.Reader
}

// MediaService validates and stores uploaded images.
type MediaService interface {
	// Upload stores the image and returns its public path (/uploads/<name>).
	// Non-image content types and payloads over MaxUploadSize yield
	// ErrInvalidUpload before anything is written.
	Upload(ctx context.Context, in UploadInput) (string, error)
}

type mediaServiceImpl struct {
	storage storage.Storage
	now     func() time.Time
	random  func() int

	mu     sync.Mutex
	issued map[string]struct{}
}

// NewMediaService creates a MediaService writing into store.
func NewMediaService(store storage.Storage) MediaService {
	return &mediaServiceImpl{
		storage: store,
		now:     time.Now,
		random:  func() int { return rand.N(1_000_000_000) },
		issued:  make(map[string]struct{}),
	}
}

func (s *mediaServiceImpl) Upload(ctx context.Context, in UploadInput) (string, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(in.ContentType)), "image/") {
		return "", fmt.Errorf("%w: only image files are allowed", ErrInvalidUpload)
	}
	if in.Size > MaxUploadSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, MaxUploadSize)
	}
	if in.Body == nil {
		return "", fmt.Errorf("%w: no file uploaded", ErrInvalidUpload)
	}

	// The declared size may lie; buffer at most one byte past the limit.
	data, err := io.ReadAll(io.LimitReader(in.Body, MaxUploadSize+1))
	if err != nil {
		// a broken or truncated request body is the client's fault
		return "", fmt.Errorf("%w: read upload: %w", ErrInvalidUpload, err)
	}
	if len(data) > MaxUploadSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, MaxUploadSize)
	}

	name := s.nextName(cleanExt(in.Filename))
	url, err := s.storage.Save(ctx, name, bytes.NewReader(data), in.ContentType)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return url, nil
}

// nextName returns image-<unix millis>-<9 random digits><ext>, never
// repeating a name issued by this process.
func (s *mediaServiceImpl) nextName(ext string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		name := fmt.Sprintf("image-%d-%09d%s", s.now().UnixMilli(), s.random(), ext)
		if _, dup := s.issued[name]; !dup {
			s.issued[name] = struct{}{}
			return name
		}
	}
}

// cleanExt keeps the lowercase extension of filename when it is short and
// alphanumeric, so client input never reaches the path.
func cleanExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 9 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
