package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/config"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/logging"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   差分マイグレーションを適用
  reset       全テーブルを DROP し、集約スキーマで再作成
  fresh       全テーブルを DROP し、全マイグレーションを順番に適用
  import      差分を適用した後、DATA_DIR の posts.json / contacts.json をコピー`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		logging.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	fs := afero.NewOsFs()
	m := &migrator{pool: pool, fs: fs, dir: findMigrationDir(fs)}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		err = m.incremental(ctx)
	case "reset":
		if err = m.execFile(ctx, "000_drop_all.sql"); err == nil {
			err = m.consolidated(ctx)
		}
	case "fresh":
		if err = m.execFile(ctx, "000_drop_all.sql"); err == nil {
			err = m.incremental(ctx)
		}
	case "import":
		if err = m.incremental(ctx); err == nil {
			err = importJSON(ctx, pool, fs, cfg.DataDir)
		}
	default:
		usage()
	}
	if err != nil {
		logging.Fatal("migrate failed", "command", cmd, "error", err)
	}
}

func findMigrationDir(fs afero.Fs) string {
	if ok, _ := afero.DirExists(fs, "migrations"); ok {
		return "migrations"
	}
	return "../migrations"
}

type migrator struct {
	pool *pgxpool.Pool
	fs   afero.Fs
	dir  string
}

// upFiles は .up.sql ファイル名をソート済みで返す
func (m *migrator) upFiles() ([]string, error) {
	entries, err := afero.ReadDir(m.fs, m.dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *migrator) execFile(ctx context.Context, filename string) error {
	sql, err := afero.ReadFile(m.fs, filepath.Join(m.dir, filename))
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", filename, err)
	}
	slog.Info("sql applied", "file", filename)
	return nil
}

func (m *migrator) ensureSchemaMigrations(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

// incremental は未適用の .up.sql を順番に適用する
func (m *migrator) incremental(ctx context.Context) error {
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")

		var exists bool
		if err := m.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists); err != nil {
			return fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := m.execFile(ctx, filename); err != nil {
			return err
		}
		if _, err := m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
		applied++
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

// consolidated は集約スキーマを適用し、全マイグレーションを適用済みとして記録する
func (m *migrator) consolidated(ctx context.Context) error {
	if err := m.execFile(ctx, "000_consolidated.sql"); err != nil {
		return err
	}
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")
		if _, err := m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(files))
	return nil
}

// importJSON は JSON ファイルのレコードを PostgreSQL にコピーする。既存 ID はスキップ
func importJSON(ctx context.Context, pool *pgxpool.Pool, fs afero.Fs, dataDir string) error {
	src := repository.OpenJSON(fs, dataDir)
	dst := &repository.Stores{
		Posts:    repository.NewPgPostRepository(pool),
		Contacts: repository.NewPgContactRepository(pool),
		DB:       pool,
	}
	res, err := repository.Copy(ctx, src, dst)
	if err != nil {
		return err
	}
	slog.Info("import completed", "dir", dataDir, "posts", res.Posts, "contacts", res.Contacts)
	return nil
}
