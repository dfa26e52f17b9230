package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "DATABASE_DRIVER", "JWT_TTL", "LOGIN_RATE_LIMIT", "SITE_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := FromViper(newViper())

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if cfg.Auth.JWTTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.Auth.JWTTTL)
	}
	if cfg.Limits.LoginMax != 5 || cfg.Limits.LoginWindow != 15*time.Minute {
		t.Fatalf("unexpected login limits: %+v", cfg.Limits)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Fatalf("expected 10MiB upload cap, got %d", cfg.Upload.MaxBytes)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_DRIVER", " Postgres ")
	t.Setenv("DATABASE_DSN", "host=db user=cms")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("SITE_BASE_URL", "https://example.com/")
	t.Setenv("APP_ENV", "Development")

	cfg := FromViper(newViper())

	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected listen addr derived from port, got %q", cfg.ListenAddr)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "host=db user=cms" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Auth.JWTTTL != 2*time.Hour {
		t.Fatalf("expected 2h ttl, got %s", cfg.Auth.JWTTTL)
	}
	if cfg.Limits.LoginMax != 3 {
		t.Fatalf("expected login max 3, got %d", cfg.Limits.LoginMax)
	}
	if cfg.SiteBaseURL != "https://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.SiteBaseURL)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development env")
	}
}
