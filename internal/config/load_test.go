package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "installer.toml"), dir)
	require.NoError(t, err)
	assert.Equal(t, Default(dir), *cfg)
	assert.True(t, cfg.LogToFile())
	assert.True(t, cfg.UpdateCheckEnabled())
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "installer.toml")
	content := `
[install]
package = "pocketpaw-nightly"
default_extras = ["dashboard"]
timeout_seconds = 60

[python]
min_version = "3.12"

[log]
level = "debug"
format = "json"
file = false

[update]
check = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "pocketpaw-nightly", cfg.Install.Package)
	assert.Equal(t, []string{"dashboard"}, cfg.Install.DefaultExtras)
	assert.Equal(t, 60, cfg.Install.TimeoutSeconds)
	assert.Equal(t, dir, cfg.Install.Dir)
	assert.Equal(t, "3.12", cfg.Python.MinVersion)
	assert.Equal(t, DefaultPythonCandidates, cfg.Python.Candidates)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.LogToFile())
	assert.False(t, cfg.UpdateCheckEnabled())
	assert.Equal(t, DefaultPyPIURL, cfg.Update.IndexURL)
}

func TestLoadReadError(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigValidation))
}

func TestParseConfigSyntaxError(t *testing.T) {
	_, err := ParseConfig([]byte("[install\n"), "installer.toml", "/tmp/paw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config installer.toml")
	assert.False(t, errors.Is(err, ErrConfigValidation))
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte("[install]\npackages = \"x\"\n"), "installer.toml", "/tmp/paw")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigValidation))
}

func TestParseConfigValidationError(t *testing.T) {
	_, err := ParseConfig([]byte("[python]\nmin_version = \"not-a-version\"\n"), "installer.toml", "/tmp/paw")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigValidation))
	assert.Contains(t, err.Error(), "python.min_version")
}

func TestLoadRelativeInstallDirFollowsConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(t.TempDir(), "etc")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	path := filepath.Join(cfgDir, "installer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[install]\ndir = \"pocketpaw/env\"\n"), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfgDir, "pocketpaw", "env"), cfg.Install.Dir)
}

func TestLoadKeepsHomeRelativeInstallDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "installer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[install]\ndir = \"~/pp\"\n"), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "~/pp", cfg.Install.Dir)
}
