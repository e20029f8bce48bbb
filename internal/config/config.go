// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used by both the
// HTTP server and the terminal browser.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"ormtutor/internal/section"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Section shown on "/" and when the terminal browser starts
	DefaultSection section.ID

	// PostgreSQL connection. An empty DBHost disables the database store
	// and the embedded curriculum is served alone.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). An empty ValkeyHost disables the
	// page cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	PageCacheTTL   time.Duration

	// HTTP hardening
	RateLimitPerMinute int
	TrustProxy         bool // key rate limits by X-Forwarded-For
	CORSAllowedOrigins []string

	// Logging
	LogLevel slog.Level
	LogFile  string // browse mode only; empty discards logs
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value cannot be
// parsed or a critical value is missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     os.Getenv("POSTGRES_HOST"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "ormtutor"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "ormtutor"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		LogFile: os.Getenv("ORMTUTOR_LOG_FILE"),
	}

	slug := envOrDefault("DEFAULT_SECTION", section.Default.String())
	id, ok := section.Parse(slug)
	if !ok {
		return nil, fmt.Errorf("DEFAULT_SECTION %q is not one of theory, setup, crud, advanced", slug)
	}
	cfg.DefaultSection = id

	ttl, err := time.ParseDuration(envOrDefault("PAGE_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("PAGE_CACHE_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("PAGE_CACHE_TTL must be positive, got %s", ttl)
	}
	cfg.PageCacheTTL = ttl

	limit, err := strconv.Atoi(envOrDefault("RATE_LIMIT_PER_MINUTE", "300"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if limit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", limit)
	}
	cfg.RateLimitPerMinute = limit

	if v := os.Getenv("TRUST_PROXY"); v != "" {
		trust, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TRUST_PROXY: %w", err)
		}
		cfg.TrustProxy = trust
	}

	cfg.CORSAllowedOrigins = splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	if err := cfg.LogLevel.UnmarshalText([]byte(envOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.StoreEnabled() && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// StoreEnabled reports whether a PostgreSQL host is configured.
func (c *Config) StoreEnabled() bool {
	return c.DBHost != ""
}

// CacheEnabled reports whether a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, net.JoinHostPort(c.DBHost, c.DBPort), c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
