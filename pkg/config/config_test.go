package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd to be true")
	}
	if cfg.Records.Table != "Products" {
		t.Fatalf("expected default records table, got %q", cfg.Records.Table)
	}
	if !cfg.Records.HasCredentials() {
		t.Fatal("expected records credentials to be present")
	}
	if cfg.Catalog.CacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache ttl, got %v", cfg.Catalog.CacheTTL)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if cfg.Email.PublicKey != "your_public_key_here" {
		t.Fatalf("expected placeholder email key, got %q", cfg.Email.PublicKey)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestRecordsConfig_MissingCredentials(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvRecordsKey, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Records.HasCredentials() {
		t.Fatal("expected credentials to be reported missing")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRecordsKey, "keyXXXX")
	t.Setenv(EnvRecordsBase, "appXXXX")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
}
