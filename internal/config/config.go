// Package config содержит логику чтения конфигурации сервиса учёта посылок.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса учёта посылок.
type Config struct {
	RunAddress       string `env:"RUN_ADDRESS"`
	DatabaseURI      string `env:"DATABASE_URI"`
	TelegramAPIURL   string `env:"TELEGRAM_API_URL"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Значения из окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envTelegramAPIURL := cfg.TelegramAPIURL
	envTelegramBotToken := cfg.TelegramBotToken
	envTelegramChatID := cfg.TelegramChatID

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.TelegramAPIURL, "t", "https://api.telegram.org", "telegram API base URL")
	flag.StringVar(&cfg.TelegramBotToken, "b", "", "telegram bot token")
	flag.StringVar(&cfg.TelegramChatID, "c", "", "telegram chat ID for courier notifications")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envTelegramAPIURL != "" {
		cfg.TelegramAPIURL = envTelegramAPIURL
	}
	if envTelegramBotToken != "" {
		cfg.TelegramBotToken = envTelegramBotToken
	}
	if envTelegramChatID != "" {
		cfg.TelegramChatID = envTelegramChatID
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.TelegramAPIURL == "" {
		cfg.TelegramAPIURL = "https://api.telegram.org"
	}

	return cfg, nil
}
