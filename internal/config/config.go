package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // SITE_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/ahhmedWalid1/anas-haloul-website/internal/notify"
	"github.com/joho/godotenv"
)

// DefaultAdminToken is the placeholder secret used when ADMIN_TOKEN is unset.
// Any real deployment must override it.
const DefaultAdminToken = "changeme"

// Config holds the process-wide settings.
type Config struct {
	Port        string
	AdminToken  string
	SiteURL     string // absolute base for link previews, empty = infer from request
	FrontendURL string // CORS origin
	DataDir     string
	UploadsDir  string
	DatabaseURL string // non-empty switches the record store to PostgreSQL
	Location    *time.Location
	Mail        notify.MailConfig
	LogLevel    string // DEBUG, INFO, WARN or ERROR
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:        get("PORT", "5174"),
		AdminToken:  get("ADMIN_TOKEN", DefaultAdminToken),
		SiteURL:     strings.TrimRight(get("SITE_URL", ""), "/"),
		FrontendURL: get("FRONTEND_URL", "*"),
		DataDir:     get("DATA_DIR", "server/data"),
		UploadsDir:  get("UPLOADS_DIR", "public/uploads"),
		DatabaseURL: get("DATABASE_URL", ""),
		LogLevel:    get("LOG_LEVEL", "INFO"),
		Mail: notify.MailConfig{
			Host:     get("MAIL_HOST", "smtp.gmail.com"),
			Port:     get("MAIL_PORT", "587"),
			Username: get("MAIL_USER", ""),
			Password: get("MAIL_PASS", ""),
			From:     get("MAIL_FROM", ""),
			To:       get("MAIL_TO", ""),
		},
	}

	tz := get("SITE_TIMEZONE", "Africa/Cairo")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		slog.Warn("unknown SITE_TIMEZONE, using UTC", "timezone", tz, "error", err)
		loc = time.UTC
	}
	cfg.Location = loc
	return cfg
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
