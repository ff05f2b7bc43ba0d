// Package config loads the server settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/artur/videohub/internal/downloader"
)

const (
	DefaultAddr         = ":8000"
	DefaultDownloadsDir = "./downloads"
	DefaultDBPath       = "./app.db"
	DefaultYtDlpFormat  = downloader.DefaultFormat
)

type Config struct {
	Addr         string
	YTAPIKey     string
	DownloadsDir string
	DBPath       string
	YtDlpFormat  string

	TelegramToken  string
	TelegramChatID int64
}

// Load reads the environment once. A missing YT_API_KEY is allowed; channel
// listing reports it per request instead.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          listenAddr(),
		YTAPIKey:      strings.TrimSpace(os.Getenv("YT_API_KEY")),
		DownloadsDir:  getenv("DOWNLOADS_DIR", DefaultDownloadsDir),
		DBPath:        getenv("DB_PATH", DefaultDBPath),
		YtDlpFormat:   getenv("YTDLP_FORMAT", DefaultYtDlpFormat),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", raw, err)
		}
		cfg.TelegramChatID = id
	}

	return cfg, nil
}

// NotificationsEnabled reports whether both Telegram settings are present.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Prepare creates the downloads directory and the database's parent directory.
func (c *Config) Prepare() error {
	if err := os.MkdirAll(c.DownloadsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create downloads dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.DBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create database dir: %w", err)
	}
	return nil
}

func listenAddr() string {
	if addr := os.Getenv("ADDR"); addr != "" {
		return addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return DefaultAddr
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
