package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DOCBOT_REDIS_URL", "DOCBOT_DATABASE_URL", "DOCBOT_LOCALE", "DOCBOT_SESSION_TTL", "DOCBOT_PAGE_COLUMNS", "DOCBOT_PAGE_ROWS"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" || cfg.DatabaseURL != "" {
		t.Errorf("urls = %q %q", cfg.RedisURL, cfg.DatabaseURL)
	}
	if cfg.Locale != "ru" || cfg.SessionTTL != 24*time.Hour {
		t.Errorf("locale=%q ttl=%v", cfg.Locale, cfg.SessionTTL)
	}
	if cfg.PageColumns != 2 || cfg.PageRows != 5 {
		t.Errorf("layout = %dx%d", cfg.PageColumns, cfg.PageRows)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOCBOT_LOCALE", "en")
	t.Setenv("DOCBOT_SESSION_TTL", "30m")
	t.Setenv("DOCBOT_PAGE_COLUMNS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "en" || cfg.SessionTTL != 30*time.Minute || cfg.PageColumns != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOCBOT_PAGE_ROWS", "zero")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a non-numeric page size")
	}
	t.Setenv("DOCBOT_PAGE_ROWS", "")
	t.Setenv("DOCBOT_SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a bad duration")
	}
}
