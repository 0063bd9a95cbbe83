package config

import (
	"fmt"
	"os"
	"time"
)

// Config captures everything the bot needs at startup. Values come from the
// environment so main stays lean.
type Config struct {
	// Addr is the listen address for the ops/webhook HTTP server.
	Addr string

	// TelegramToken authenticates against the Bot API. Required.
	TelegramToken string

	// WebhookURL switches the gateway from long-polling to webhook delivery
	// when set. The path component is where Telegram posts updates.
	WebhookURL string

	// GoogleCredentialsFile is the service-account JSON used for both the
	// Sheets record store and the Drive object store. Required.
	GoogleCredentialsFile string

	// SpreadsheetID identifies the registration sheet. Required unless
	// DatabaseURL selects the Postgres record store instead.
	SpreadsheetID string

	// SheetRange is the A1 range rows are appended to.
	SheetRange string

	// DriveFolderID optionally parents uploaded documents.
	DriveFolderID string

	// RedisURL enables the Redis-backed session store when set; drafts
	// survive a process restart. Empty means in-memory sessions.
	RedisURL string

	// DatabaseURL selects the Postgres record store when set.
	DatabaseURL string

	// UploadTimeout bounds a single document intake end to end.
	UploadTimeout time.Duration

	// SessionTTL caps how long an abandoned draft lives in Redis.
	SessionTTL time.Duration
}

// FromEnv builds a Config from environment variables. It fails fast when the
// messaging token or storage credentials are absent so a misconfigured deploy
// dies at startup instead of at the first user's dialog.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:                  envOr("GATEPASS_ADDR", ":8080"),
		TelegramToken:         os.Getenv("TELEGRAM_TOKEN"),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		SpreadsheetID:         os.Getenv("SPREADSHEET_ID"),
		SheetRange:            envOr("SHEET_RANGE", "Registrations!A:G"),
		DriveFolderID:         os.Getenv("DRIVE_FOLDER_ID"),
		RedisURL:              os.Getenv("REDIS_URL"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		UploadTimeout:         durationOr("UPLOAD_TIMEOUT", time.Minute),
		SessionTTL:            durationOr("SESSION_TTL", 24*time.Hour),
	}

	if cfg.TelegramToken == "" {
		return Config{}, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.GoogleCredentialsFile == "" {
		return Config{}, fmt.Errorf("GOOGLE_CREDENTIALS_FILE is required")
	}
	if cfg.SpreadsheetID == "" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("SPREADSHEET_ID or DATABASE_URL is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
