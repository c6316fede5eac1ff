package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithTempDirs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv(EnvPrefix+"CONFIG_PATH", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	loadWithTempDirs(t)
	Load()

	assert.Equal(t, "7", Get("valid_days", ""))
	assert.Equal(t, "sqlite", Get("first_run_backend", ""))
	assert.Equal(t, "notice-tray", Get("default_sender", ""))
	assert.Contains(t, Get("save_path", ""), "notices.json")
}

func TestEnvOverridesFile(t *testing.T) {
	dir := loadWithTempDirs(t)

	configPath := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("valid_days = 14\ndefault_sender = \"from-file\"\n"), 0644))
	t.Setenv(EnvPrefix+"CONFIG_PATH", configPath)
	t.Setenv(EnvPrefix+"DEFAULT_SENDER", "from-env")

	Load()

	assert.Equal(t, 14, GetInt("valid_days", 0))
	assert.Equal(t, "from-env", Get("default_sender", ""))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	loadWithTempDirs(t)
	t.Setenv(EnvPrefix+"VALID_DAYS", "-3")
	t.Setenv(EnvPrefix+"FIRST_RUN_BACKEND", "redis")
	t.Setenv(EnvPrefix+"QUIET", "maybe")

	Load()

	assert.Equal(t, 7, GetInt("valid_days", 0))
	assert.Equal(t, "sqlite", Get("first_run_backend", ""))
	assert.False(t, GetBool("quiet", false))
}

func TestGetBoolNormalization(t *testing.T) {
	loadWithTempDirs(t)
	t.Setenv(EnvPrefix+"DEBUG", "yes")

	Load()

	assert.True(t, GetBool("debug", false))
}
