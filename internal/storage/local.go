package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrInvalidKey はベースディレクトリの外を指すキーに対して返される。
var ErrInvalidKey = errors.New("storage: invalid key")

// LocalStorage はローカルファイルシステムに画像を保存する Storage 実装。
type LocalStorage struct {
	fs        afero.Fs
	baseDir   string // ディスク上のルートディレクトリ (例: "public/uploads")
	urlPrefix string // HTTP で配信する際の URL プレフィックス (例: "/uploads")
}

// NewLocalStorage は LocalStorage を生成する。
func NewLocalStorage(fs afero.Fs, baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{fs: fs, baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// LocalStorage が Storage を満たすことをコンパイル時に確認する。
var _ Storage = (*LocalStorage)(nil)

func (s *LocalStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.baseDir, key), nil
}

// Save は data を baseDir/key に書き込む。baseDir は初回に作成する。
// 既存ファイルは上書きしない。
func (s *LocalStorage) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	dest, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := s.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(dest)
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(dest)
		return "", fmt.Errorf("storage: close: %w", err)
	}

	return s.urlPrefix + "/" + key, nil
}
