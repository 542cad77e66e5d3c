package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	DBPath     string
	USDAAPIKey string

	// Telegram Config
	TelegramBotToken     string
	TelegramWebhookURL   string
	TelegramAllowUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables. A .env
// file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	// Ignore the error: a missing .env file just means plain env vars.
	_ = godotenv.Load()

	dbPath := os.Getenv("MACROLOG_DB_PATH")
	if dbPath == "" {
		dbPath = "data/macrolog.db"
	}

	// Optional: food lookup falls back to the local catalog without it.
	usdaAPIKey := os.Getenv("USDA_API_KEY")

	// Telegram Config (Optional for CLI, required for Bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")

	var allowUserIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOW_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_IDS entry %q: %w", part, err)
			}
			allowUserIDs = append(allowUserIDs, id)
		}
	}

	return &Config{
		DBPath:               dbPath,
		USDAAPIKey:           usdaAPIKey,
		TelegramBotToken:     telegramBotToken,
		TelegramWebhookURL:   telegramWebhookURL,
		TelegramAllowUserIDs: allowUserIDs,
	}, nil
}
