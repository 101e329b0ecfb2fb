package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the docbot binary.
type Config struct {
	RedisURL     string
	DatabaseURL  string
	ProjectRoot  string
	TemplatesDir string
	LocaleDir    string
	Locale       string
	LogMode      string
	SessionTTL   time.Duration
	PageColumns  int
	PageRows     int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; real
// environment variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	projectRoot, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg := &Config{
		RedisURL:     getEnv("DOCBOT_REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:  getEnv("DOCBOT_DATABASE_URL", ""),
		ProjectRoot:  getEnv("DOCBOT_PROJECT_ROOT", projectRoot),
		TemplatesDir: getEnv("DOCBOT_TEMPLATES_DIR", "resources/templates"),
		LocaleDir:    getEnv("DOCBOT_LOCALE_DIR", "l10n"),
		Locale:       getEnv("DOCBOT_LOCALE", "ru"),
		LogMode:      getEnv("DOCBOT_LOG_MODE", "dev"),
	}

	if cfg.SessionTTL, err = time.ParseDuration(getEnv("DOCBOT_SESSION_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("parse DOCBOT_SESSION_TTL: %w", err)
	}
	if cfg.PageColumns, err = getEnvInt("DOCBOT_PAGE_COLUMNS", 2); err != nil {
		return nil, err
	}
	if cfg.PageRows, err = getEnvInt("DOCBOT_PAGE_ROWS", 5); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
