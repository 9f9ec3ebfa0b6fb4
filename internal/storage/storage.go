package storage

import (
	"context"
	"io"
)

// Storage は画像ファイルの保存を抽象化するインターフェース。
// アップロードディレクトリは追記のみで、保存済みファイルの上書き・削除は行わない。
type Storage interface {
	// Save はファイルを保存し、公開 URL を返す。
	// key はサニタイズ済みのフラットなファイル名 (例: "image-1700000000000-000000042.jpg")。
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)
}
