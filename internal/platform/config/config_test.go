package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("fails without telegram token", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "")
		t.Setenv("GOOGLE_CREDENTIALS_FILE", "/etc/gatepass/creds.json")
		t.Setenv("SPREADSHEET_ID", "sheet-1")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
	})

	t.Run("fails without storage credentials", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		t.Setenv("GOOGLE_CREDENTIALS_FILE", "")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_CREDENTIALS_FILE")
	})

	t.Run("fails without a record store target", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		t.Setenv("GOOGLE_CREDENTIALS_FILE", "/etc/gatepass/creds.json")
		t.Setenv("SPREADSHEET_ID", "")
		t.Setenv("DATABASE_URL", "")

		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("database url satisfies the record store requirement", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		t.Setenv("GOOGLE_CREDENTIALS_FILE", "/etc/gatepass/creds.json")
		t.Setenv("SPREADSHEET_ID", "")
		t.Setenv("DATABASE_URL", "postgres://localhost/gatepass")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/gatepass", cfg.DatabaseURL)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		t.Setenv("GOOGLE_CREDENTIALS_FILE", "/etc/gatepass/creds.json")
		t.Setenv("SPREADSHEET_ID", "sheet-1")
		t.Setenv("GATEPASS_ADDR", "")
		t.Setenv("UPLOAD_TIMEOUT", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "Registrations!A:G", cfg.SheetRange)
		assert.Equal(t, time.Minute, cfg.UploadTimeout)
	})

	t.Run("parses durations", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		t.Setenv("GOOGLE_CREDENTIALS_FILE", "/etc/gatepass/creds.json")
		t.Setenv("SPREADSHEET_ID", "sheet-1")
		t.Setenv("UPLOAD_TIMEOUT", "90s")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, cfg.UploadTimeout)
	})
}
