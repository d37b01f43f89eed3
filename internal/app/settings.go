package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings represents configuration loaded from config.yaml.
// Field names match snake_case YAML keys.
type Settings struct {
	DBPath      string `yaml:"db_path"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	MaxAttempts int    `yaml:"max_attempts"`
	Backoff     string `yaml:"backoff"`
	History     *bool  `yaml:"history"`
}

// Defaults applied when config.yaml omits a value.
const (
	DefaultTimeoutSec = 30
)

// EffectiveTimeoutSec returns the configured timeout or the default.
func (s Settings) EffectiveTimeoutSec() int {
	if s.TimeoutSec > 0 {
		return s.TimeoutSec
	}
	return DefaultTimeoutSec
}

// HistoryEnabled reports whether invocations should be persisted. Defaults
// to on; set `history: false` to opt out.
func (s Settings) HistoryEnabled() bool {
	if s.History == nil {
		return true
	}
	return *s.History
}

// settingsOnce, settings, settingsErr implement the sync.Once lazy-load
// singleton for config. dbPathOverrideMu and dbPathOverride implement a
// mutex-protected process-wide override for CLI --db-path.
//
//nolint:gochecknoglobals // sync.Once singleton + RWMutex override are intentional process-wide state
var (
	settingsOnce sync.Once
	settings     Settings
	settingsErr  error

	dbPathOverrideMu sync.RWMutex
	dbPathOverride   string
)

// SetDBPathOverride sets a process-wide database path override.
// Intended for CLI flag support (--db-path).
func SetDBPathOverride(path string) {
	dbPathOverrideMu.Lock()
	dbPathOverride = path
	dbPathOverrideMu.Unlock()
}

func getDBPathOverride() string {
	dbPathOverrideMu.RLock()
	v := dbPathOverride
	dbPathOverrideMu.RUnlock()
	return v
}

// LoadSettings loads configuration once using the documented lookup order.
// Lookup order (first found wins):
// 1) ~/.config/osapilot/config.yaml
// 2) /etc/osapilot/config.yaml
// 3) ./config.yaml (lowest priority; allows repo-local overrides)
// Environment variables are handled separately.
func LoadSettings() (Settings, error) {
	settingsOnce.Do(func() {
		settings = Settings{}

		dir, err := ConfigDir()
		if err != nil {
			settingsErr = err
			return
		}
		if s, err := loadSettingsFile(filepath.Join(dir, "config.yaml")); err == nil {
			settings = s
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		if s, err := loadSettingsFile(filepath.Join(string(os.PathSeparator), "etc", "osapilot", "config.yaml")); err == nil {
			settings = s
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		if s, err := loadSettingsFile("config.yaml"); err == nil {
			settings = s
		} else if !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
		}
	})
	return settings, settingsErr
}

func loadSettingsFile(path string) (Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: fixed, documented config locations
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
