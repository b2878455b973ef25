package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
// It merges file defaults and environment overrides to support both local and deployed runs.
// Session settings live here, injected at startup, rather than as process-wide globals.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string

	BcryptCost int
	MaxDBConns int32

	SessionCookieName string
	SessionSecret     string
	SessionAlgorithm  string
	SessionCookieTTL  time.Duration
	SessionStoreTTL   time.Duration
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Session struct {
		CookieName       string `yaml:"cookie_name"`
		Secret           string `yaml:"secret"`
		Algorithm        string `yaml:"algorithm"`
		CookieTTLSeconds int    `yaml:"cookie_ttl_seconds"`
		StoreTTLSeconds  int    `yaml:"store_ttl_seconds"`
	} `yaml:"session"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:         "jobboard-api",
		HTTPPort:          8080,
		GRPCPort:          9090,
		BcryptCost:        12,
		MaxDBConns:        20,
		SessionCookieName: "FOXXSESSID",
		SessionAlgorithm:  "sha256",
		SessionCookieTTL:  5 * time.Minute,
		SessionStoreTTL:   2 * time.Minute,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Session.CookieName != "" {
			cfg.SessionCookieName = f.Session.CookieName
		}
		if f.Session.Secret != "" {
			cfg.SessionSecret = f.Session.Secret
		}
		if f.Session.Algorithm != "" {
			cfg.SessionAlgorithm = f.Session.Algorithm
		}
		if f.Session.CookieTTLSeconds > 0 {
			cfg.SessionCookieTTL = time.Duration(f.Session.CookieTTLSeconds) * time.Second
		}
		if f.Session.StoreTTLSeconds > 0 {
			cfg.SessionStoreTTL = time.Duration(f.Session.StoreTTLSeconds) * time.Second
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.SessionCookieName = envOrDefault("SESSION_COOKIE_NAME", cfg.SessionCookieName)
	cfg.SessionSecret = envOrDefault("SESSION_SECRET", cfg.SessionSecret)
	cfg.SessionAlgorithm = envOrDefault("SESSION_ALGORITHM", cfg.SessionAlgorithm)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.SessionCookieTTL = time.Duration(envInt("SESSION_COOKIE_TTL_SECONDS", int(cfg.SessionCookieTTL.Seconds()))) * time.Second
	cfg.SessionStoreTTL = time.Duration(envInt("SESSION_STORE_TTL_SECONDS", int(cfg.SessionStoreTTL.Seconds()))) * time.Second

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("missing SESSION_SECRET")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
