package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/groupchat-wrapped/internal/models"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Load loads configuration from environment variables
// It first attempts to load from .env file, then reads environment variables
func Load() (*models.Config, error) {
	// Try to load .env file (optional, ignore error if not found)
	_ = godotenv.Load()

	config := &models.Config{
		// App settings
		Timezone:    getEnv("TIMEZONE", "Europe/Warsaw"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Output settings
		OutputPath: getEnv("WRAPPED_OUTPUT", "groupchat_wrapped.html"),
		ServeAddr:  getEnv("WRAPPED_SERVE_ADDR", ""),
		Schedule:   getEnv("WRAPPED_SCHEDULE", ""),

		// Telegram settings
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),

		// Gemini API settings
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout: getEnvInt("GEMINI_TIMEOUT", 30),
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks that configuration values are consistent
func Validate(cfg *models.Config) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	if cfg.OutputPath == "" {
		return fmt.Errorf("WRAPPED_OUTPUT must not be empty")
	}

	// Telegram token and chat id only make sense together
	if (cfg.TelegramToken == "") != (cfg.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	if cfg.GeminiTimeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be positive, got %d", cfg.GeminiTimeout)
	}

	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return fmt.Errorf("WRAPPED_SCHEDULE is not a valid cron expression: %w", err)
		}
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %s", cfg.LogLevel)
	}

	return nil
}

// getEnv retrieves environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves environment variable as integer or returns default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvInt64 retrieves environment variable as int64 or returns default value
func getEnvInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
