package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSettings_EffectiveTimeoutSec(t *testing.T) {
	assert.Equal(t, DefaultTimeoutSec, Settings{}.EffectiveTimeoutSec())
	assert.Equal(t, 5, Settings{TimeoutSec: 5}.EffectiveTimeoutSec())
	assert.Equal(t, DefaultTimeoutSec, Settings{TimeoutSec: -1}.EffectiveTimeoutSec())
}

func TestSettings_HistoryEnabledDefaultsOn(t *testing.T) {
	assert.True(t, Settings{}.HistoryEnabled())

	off := false
	assert.False(t, Settings{History: &off}.HistoryEnabled())

	on := true
	assert.True(t, Settings{History: &on}.HistoryEnabled())
}

func TestSettings_YAMLKeys(t *testing.T) {
	raw := `
db_path: /tmp/x.db
timeout_sec: 45
max_attempts: 5
backoff: linear
history: false
`
	var s Settings
	require.NoError(t, yaml.Unmarshal([]byte(raw), &s))
	assert.Equal(t, "/tmp/x.db", s.DBPath)
	assert.Equal(t, 45, s.TimeoutSec)
	assert.Equal(t, 5, s.MaxAttempts)
	assert.Equal(t, "linear", s.Backoff)
	assert.False(t, s.HistoryEnabled())
}

func TestEnsureDBDir_CreatesParent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "osapilot.db")
	got, err := EnsureDBDir(dbPath)
	require.NoError(t, err)
	assert.Equal(t, dbPath, got)
	assert.DirExists(t, filepath.Dir(dbPath))
}
