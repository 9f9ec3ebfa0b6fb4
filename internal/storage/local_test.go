package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestLocalStorage_Save_CreatesDirectoryAndReturnsURL(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewLocalStorage(fs, "public/uploads", "/uploads/")

	url, err := s.Save(context.Background(), "image-1-000000001.png", strings.NewReader("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "/uploads/image-1-000000001.png" {
		t.Errorf("unexpected url %q", url)
	}

	got, err := afero.ReadFile(fs, "public/uploads/image-1-000000001.png")
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestLocalStorage_Save_NeverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewLocalStorage(fs, "uploads", "/uploads")
	ctx := context.Background()

	if _, err := s.Save(ctx, "a.png", strings.NewReader("first"), "image/png"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := s.Save(ctx, "a.png", strings.NewReader("second"), "image/png"); err == nil {
		t.Fatal("expected second save with the same key to fail")
	}

	got, _ := afero.ReadFile(fs, "uploads/a.png")
	if string(got) != "first" {
		t.Errorf("existing file was modified: %q", got)
	}
}

func TestLocalStorage_Save_RejectsPathKeys(t *testing.T) {
	s := NewLocalStorage(afero.NewMemMapFs(), "uploads", "/uploads")

	for _, key := range []string{"", "..", "../escape.png", "nested/a.png", `win\a.png`} {
		_, err := s.Save(context.Background(), key, strings.NewReader("x"), "image/png")
		if !errors.Is(err, ErrInvalidKey) {
			t.Errorf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}
