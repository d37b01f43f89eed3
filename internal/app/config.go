package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns ~/.config/osapilot/ on all platforms.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "osapilot"), nil
}

// EnsureConfigDir creates the config directory and default config.yaml if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return os.WriteFile(configFile, []byte(defaultConfig), 0600)
	}
	return nil
}

const defaultConfig = `# osapilot configuration
# Run: osapilot --help

# Optional: override the history database location.
# Can also be set via OSAPILOT_DB_PATH or --db-path.
# db_path: ~/.config/osapilot/osapilot.db

# Per-invocation osascript timeout, in seconds.
# timeout_sec: 30

# Retry policy for timeout failures.
# max_attempts: 3
# backoff: exponential   # or: linear
`

// GetDBPath resolves the history database path.
// Order of precedence:
// 1) CLI override (--db-path)
// 2) Environment variable: OSAPILOT_DB_PATH
// 3) config.yaml: db_path
// 4) Default: ~/.config/osapilot/osapilot.db
func GetDBPath() (string, error) {
	if override := getDBPathOverride(); override != "" {
		return EnsureDBDir(override)
	}

	if envPath := os.Getenv("OSAPILOT_DB_PATH"); envPath != "" {
		return EnsureDBDir(envPath)
	}

	cfg, err := LoadSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DBPath != "" {
		return EnsureDBDir(cfg.DBPath)
	}

	configDir, err := ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return EnsureDBDir(filepath.Join(configDir, "osapilot.db"))
}

// EnsureDBDir creates the database's parent directory if needed and returns
// the path unchanged.
func EnsureDBDir(dbPath string) (string, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return dbPath, nil
}
