// Package config loads and validates application configuration.
//
// Values are resolved in this order, later sources winning:
//  1. an optional YAML file named by RECIPEBOX_CONFIG
//  2. a .env file in the working directory, if present
//  3. the process environment
//
// Keys are the lower-cased environment variable names (e.g. database_url).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
// Values are populated by Load.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret is the HMAC key used to verify identity tokens. Required.
	JWTSecret string

	// LoginURL is where unauthenticated callers are redirected. Defaults to "/login".
	LoginURL string

	// MaxBodyBytes caps request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MigrateOnStart applies pending goose migrations before serving. Defaults to true.
	MigrateOnStart bool
}

// Load reads configuration and returns a Config.
// Returns an error listing any required keys that are not set.
func Load() (Config, error) {
	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	k := koanf.New(".")

	if path := os.Getenv("RECIPEBOX_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// Underscores are kept so DATABASE_URL maps to the flat key database_url
	// rather than a nested database.url path. Empty variables do not mask
	// values from the file.
	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := Config{
		Port:        getString(k, "port", "8080"),
		LogLevel:    getString(k, "log_level", "info"),
		CORSOrigins: splitCSV(getString(k, "cors_origins", "http://localhost:5173")),
		LoginURL:    getString(k, "login_url", "/login"),
		DatabaseURL: k.String("database_url"),
		JWTSecret:   k.String("auth_jwt_secret"),
	}

	var err error
	if cfg.MaxBodyBytes, err = getInt64(k, "max_body_bytes", 1<<20); err != nil {
		return Config{}, err
	}
	if cfg.MigrateOnStart, err = getBool(k, "migrate_on_start", true); err != nil {
		return Config{}, err
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required configuration not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getString returns the value at key, or fallback if it is unset or empty.
func getString(k *koanf.Koanf, key, fallback string) string {
	if v := strings.TrimSpace(k.String(key)); v != "" {
		return v
	}
	return fallback
}

func getInt64(k *koanf.Koanf, key string, fallback int64) (int64, error) {
	raw := getString(k, key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", strings.ToUpper(key), raw)
	}
	return n, nil
}

func getBool(k *koanf.Koanf, key string, fallback bool) (bool, error) {
	raw := getString(k, key, "")
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean, got %q", strings.ToUpper(key), raw)
	}
	return b, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
