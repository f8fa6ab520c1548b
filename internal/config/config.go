// Package config contains everything related to configuration
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerURL            string
	UserID               string
	AuthToken            string
	Locale               string
	LocaleDir            string
	DatabasePath         string
	LogPath              string
	LogLevel             string
	RequestTimeout       time.Duration
	AutoRefreshInterval  time.Duration
	DesktopNotifications bool
}

// Default values
const (
	defaultLocale         = "en"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 30 * time.Second
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// The first .env found wins; real environment variables still override it.
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		ServerURL:            strings.TrimRight(getEnvString("SERVER_URL", ""), "/"),
		UserID:               getEnvString("USER_ID", ""),
		AuthToken:            getEnvString("AUTH_TOKEN", ""),
		Locale:               getEnvString("LOCALE", defaultLocale),
		LocaleDir:            getEnvString("LOCALE_DIR", ""),
		DatabasePath:         getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LogPath:              getEnvString("LOG_PATH", getDefaultLogPath()),
		LogLevel:             getEnvString("LOG_LEVEL", defaultLogLevel),
		RequestTimeout:       getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		AutoRefreshInterval:  getEnvDuration("AUTO_REFRESH_INTERVAL", 0),
		DesktopNotifications: getEnvBool("DESKTOP_NOTIFICATIONS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration can reach a server.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("SERVER_URL is required (set via env or .env file)")
	}

	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid SERVER_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid SERVER_URL %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid SERVER_URL %q: missing host", c.ServerURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}

	return nil
}

// HasCredentials reports whether both auth headers are configured.
func (c *Config) HasCredentials() bool {
	return c.UserID != "" && c.AuthToken != ""
}

// configDir returns the application's configuration directory.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "engagement-tui")
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if dir := configDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite fetch log.
func getDefaultDatabasePath() string {
	dir := configDir()
	if dir == "" {
		return "engagement.db"
	}
	return filepath.Join(dir, "engagement.db")
}

// getDefaultLogPath returns the default path for the log file.
func getDefaultLogPath() string {
	dir := configDir()
	if dir == "" {
		return "engagement.log"
	}
	return filepath.Join(dir, "engagement.log")
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
		// Bare numbers are seconds
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
