package app

import (
	"testing"
	"time"

	_ "github.com/datavault-fs/accessd/internal/testing/guard"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q, want :8080", cfg.AppAddr)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Fatalf("SessionTTL = %v, want 8h", cfg.SessionTTL)
	}
	if cfg.UsageCacheTTL != 24*time.Hour {
		t.Fatalf("UsageCacheTTL = %v, want 24h", cfg.UsageCacheTTL)
	}
	if cfg.IsProduction() {
		t.Fatal("default env should not be production")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production env")
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
}
