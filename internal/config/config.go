package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Bundle modes understood by APP_BUNDLE.
const (
	BundleModeEmbed = "embed"
	BundleModeDisk  = "disk"
)

// Config holds all configuration for the view module and its host tooling.
type Config struct {
	LogFormat string
	LogLevel  string

	// BundleMode selects where resources are served from: the compiled-in
	// bundle ("embed") or a directory on disk ("disk").
	BundleMode  string
	BundlePath  string
	BundleWatch bool

	// Locale is the preferred locale for localized strings, e.g. "en" or "es-MX".
	Locale string
}

// New loads configuration from a .env file, if present, and environment variables.
// Every value has a default so the module works with an empty environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env files.
func FromEnv() *Config {
	cfg := &Config{
		LogFormat:   getenv("LOG_FORMAT", "text"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		BundleMode:  strings.ToLower(getenv("APP_BUNDLE", BundleModeEmbed)),
		BundlePath:  getenv("BUNDLE_PATH", "web/resources"),
		BundleWatch: getbool("BUNDLE_WATCH", false),
		Locale:      getenv("APP_LOCALE", "en"),
	}

	if cfg.BundleMode != BundleModeEmbed && cfg.BundleMode != BundleModeDisk {
		slog.Warn("Unknown APP_BUNDLE value, using embedded bundle", "value", cfg.BundleMode)
		cfg.BundleMode = BundleModeEmbed
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}
