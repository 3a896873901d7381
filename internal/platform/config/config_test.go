package config

import (
	"testing"
	"time"
)

func TestLoad_ParsesAndNormalizes(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("AUTH_MODE", "DEV")
	t.Setenv("PORT", "8080")
	t.Setenv("HTTP_READ_TIMEOUT", "5s")
	t.Setenv("DEFAULT_MAX_CAPACITY", "100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("expected memory storage, got %q", cfg.Storage)
	}
	if cfg.AuthMode != AuthDev {
		t.Fatalf("expected dev auth, got %q", cfg.AuthMode)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.ReadTimeout != 5*time.Second || cfg.DefaultMaxCapacity != 100 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DB_DSN")
	}

	t.Setenv("DB_DSN", "postgres://localhost/cownect")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Storage != StoragePostgres {
		t.Fatalf("expected postgres, got %q", cfg.Storage)
	}
}

func TestValidate_AuthModes(t *testing.T) {
	base := Config{Storage: StorageMemory}

	cfg := base
	cfg.AuthMode = AuthJWT
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for jwt without secret")
	}
	cfg.JWTSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = base
	cfg.AuthMode = AuthRemote
	cfg.AuthBaseURL = "https://iam.example"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for remote without api key")
	}

	cfg = base
	cfg.AuthMode = "magic"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
