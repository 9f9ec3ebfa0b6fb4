package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/config"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/handler"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/logging"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/notify"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/repository"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/service"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/storage"
	"github.com/spf13/afero"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.AdminToken == config.DefaultAdminToken {
		slog.Warn("ADMIN_TOKEN is not set, using the insecure default")
	}

	// DATABASE_URL があれば PostgreSQL、なければ JSON ファイル
	var stores *repository.Stores
	if cfg.DatabaseURL != "" {
		var err error
		stores, err = repository.OpenPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		slog.Info("record store: postgres")
	} else {
		stores = repository.OpenJSON(afero.NewOsFs(), cfg.DataDir)
		slog.Info("record store: json files", "dir", cfg.DataDir)
	}
	defer stores.Close()

	// メール設定が揃っている場合のみ通知を有効化
	var notifier service.ContactNotifier
	var async *notify.Async
	if cfg.Mail.Enabled() {
		async = notify.NewAsync(notify.NewMailer(cfg.Mail, cfg.Location))
		notifier = async
	} else {
		slog.Info("mail notifications disabled")
	}

	postService := service.NewPostService(stores.Posts, cfg.Location)
	contactService := service.NewContactService(stores.Contacts, notifier)
	mediaService := service.NewMediaService(storage.NewLocalStorage(afero.NewOsFs(), cfg.UploadsDir, "/uploads"))

	routes := handler.Routes{
		Base:       handler.New(stores.DB, cfg.FrontendURL),
		AdminToken: cfg.AdminToken,
		Posts:      handler.NewPostHandler(postService),
		Contacts:   handler.NewContactHandler(contactService),
		Uploads:    handler.NewUploadHandler(mediaService),
		Preview:    handler.NewPreviewHandler(postService, cfg.SiteURL, nil),
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      routes.Mux(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	if async != nil {
		done := make(chan struct{})
		go func() {
			async.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			slog.Warn("pending mail notifications abandoned")
		}
	}
	slog.Info("server stopped")
}
