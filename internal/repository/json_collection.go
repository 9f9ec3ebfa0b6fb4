package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// jsonCollection is one JSON array document on disk, newest record first.
//
// Every mutation reads the whole array, changes it in memory and writes the
// whole array back through a temp file + rename, so a failed write never
// leaves a truncated document behind. mu serializes these cycles within the
// process; the store is not safe for use by several processes.
type jsonCollection[T any] struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

func newJSONCollection[T any](fs afero.Fs, path string) *jsonCollection[T] {
	return &jsonCollection[T]{fs: fs, path: path}
}

// read returns the current records. The document is created as [] on first access.
func (c *jsonCollection[T]) read(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// update runs fn over the current records and persists its result.
// Nothing is written when fn returns an error.
func (c *jsonCollection[T]) update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.store(next)
}

// ping checks that the document can be read.
func (c *jsonCollection[T]) ping(ctx context.Context) error {
	_, err := c.read(ctx)
	return err
}

func (c *jsonCollection[T]) load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.ensure(); err != nil {
		return nil, err
	}

	raw, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		return nil, fmt.Errorf("jsonstore: read %s: %w", c.path, err)
	}
	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("jsonstore: decode %s: %w", c.path, err)
	}
	if items == nil {
		// a document containing "null"
		items = []T{}
	}
	return items, nil
}

// ensure lazily creates the data directory and an empty document.
func (c *jsonCollection[T]) ensure() error {
	_, err := c.fs.Stat(c.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("jsonstore: stat %s: %w", c.path, err)
	}
	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("jsonstore: mkdir: %w", err)
	}
	return c.store([]T{})
}

func (c *jsonCollection[T]) store(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: encode %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := afero.TempFile(c.fs, dir, "."+filepath.Base(c.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("jsonstore: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("jsonstore: write %s: %w", c.path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("jsonstore: sync %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("jsonstore: close %s: %w", c.path, err)
	}
	if err := c.fs.Rename(tmpName, c.path); err != nil {
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("jsonstore: replace %s: %w", c.path, err)
	}
	return nil
}
