package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
service:
  id: jobboard-test
  http_port: 18080
dependencies:
  postgres_url: postgres://localhost:5432/jobboard
  redis_url: redis://localhost:6379/0
session:
  cookie_name: FOXXSESSID
  secret: mobigesture
  algorithm: sha256
  cookie_ttl_seconds: 300
  store_ttl_seconds: 120
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.ServiceID != "jobboard-test" || cfg.HTTPPort != 18080 {
		t.Fatalf("service settings not applied: %+v", cfg)
	}
	if cfg.GRPCPort != 9090 {
		t.Fatalf("grpc port default not kept: %d", cfg.GRPCPort)
	}
	if cfg.SessionCookieTTL != 5*time.Minute || cfg.SessionStoreTTL != 2*time.Minute {
		t.Fatalf("session TTLs not applied: %+v", cfg)
	}
	if cfg.SessionSecret != "mobigesture" {
		t.Fatalf("session secret not applied: %q", cfg.SessionSecret)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
dependencies:
  postgres_url: postgres://file-host:5432/jobboard
  redis_url: redis://file-host:6379/0
session:
  secret: file-secret
`)
	t.Setenv("DB_URL", "postgres://env-host:5432/jobboard")
	t.Setenv("SESSION_SECRET", "env-secret")
	t.Setenv("SESSION_COOKIE_TTL_SECONDS", "600")
	t.Setenv("BCRYPT_ROUNDS", "4")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.DatabaseURL != "postgres://env-host:5432/jobboard" {
		t.Fatalf("env did not override file database URL: %q", cfg.DatabaseURL)
	}
	if cfg.RedisURL != "redis://file-host:6379/0" {
		t.Fatalf("file redis URL lost: %q", cfg.RedisURL)
	}
	if cfg.SessionSecret != "env-secret" {
		t.Fatalf("env did not override session secret: %q", cfg.SessionSecret)
	}
	if cfg.SessionCookieTTL != 10*time.Minute {
		t.Fatalf("cookie TTL override not applied: %v", cfg.SessionCookieTTL)
	}
	if cfg.BcryptCost != 4 {
		t.Fatalf("bcrypt cost override not applied: %d", cfg.BcryptCost)
	}
}

func TestLoadConfigRequiresDependencies(t *testing.T) {
	path := writeConfigFile(t, `
session:
  secret: mobigesture
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing database and redis URLs")
	}

	path = writeConfigFile(t, `
dependencies:
  postgres_url: postgres://localhost:5432/jobboard
  redis_url: redis://localhost:6379/0
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing session secret")
	}
}
