// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL      string
	StorePath       string
	HistoryDBPath   string
	DefaultsPath    string
	RequestTimeout  time.Duration
	GenerateTimeout time.Duration
	SyncInterval    time.Duration
}

// Default values
const (
	defaultAPIBaseURL      = "https://seoscribe.frank-couchman.workers.dev"
	defaultRequestTimeout  = 60 * time.Second
	defaultGenerateTimeout = 90 * time.Second
	defaultSyncInterval    = 2 * time.Minute
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		APIBaseURL:      strings.TrimRight(getEnvString("SEOSCRIBE_API_URL", defaultAPIBaseURL), "/"),
		StorePath:       getEnvString("SEOSCRIBE_STORE_PATH", defaultStorePath()),
		HistoryDBPath:   getEnvString("SEOSCRIBE_HISTORY_DB", defaultHistoryDBPath()),
		DefaultsPath:    getEnvString("SEOSCRIBE_DEFAULTS", defaultDefaultsPath()),
		RequestTimeout:  getEnvDuration("SEOSCRIBE_REQUEST_TIMEOUT", defaultRequestTimeout),
		GenerateTimeout: getEnvDuration("SEOSCRIBE_GENERATE_TIMEOUT", defaultGenerateTimeout),
		SyncInterval:    getEnvDuration("SEOSCRIBE_SYNC_INTERVAL", defaultSyncInterval),
	}

	// Ensure data directories exist
	if err := ensureDir(filepath.Dir(cfg.StorePath)); err != nil {
		return nil, err
	}
	if err := ensureDir(filepath.Dir(cfg.HistoryDBPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envPaths returns a list of paths to check for .env files.
func envPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "seoscribe", ".env"),
			filepath.Join(home, ".seoscribe", ".env"),
		)
	}

	return paths
}

// ConfigDir returns the config directory for seoscribe.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "seoscribe")
}

// defaultStorePath returns the default path for the local key-value store.
func defaultStorePath() string {
	return filepath.Join(ConfigDir(), "store.json")
}

// defaultHistoryDBPath returns the default path for the SQLite history database.
func defaultHistoryDBPath() string {
	return filepath.Join(ConfigDir(), "history.db")
}

// defaultDefaultsPath returns the default path for the generation defaults file.
func defaultDefaultsPath() string {
	return filepath.Join(ConfigDir(), "defaults.yaml")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
