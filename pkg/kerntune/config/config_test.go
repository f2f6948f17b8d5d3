package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfig points XDG_CONFIG_HOME and HOME at a temp dir so tests
// never read the developer's real config.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "general", cfg.DefaultProfile)
	assert.False(t, cfg.DisableIPv6)
	assert.Equal(t, "conf", cfg.Output.Format)
	assert.Equal(t, "/etc/sysctl.d", cfg.Output.Dir)
	assert.Equal(t, "99-kerntune.conf", cfg.Output.File)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 90, cfg.History.RetentionDays)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := isolateConfig(t)

	cfgDir := filepath.Join(dir, "kerntune")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	content := `default_profile: database
disable_ipv6: true
output:
  format: json
  dir: /run/sysctl.d
`
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "database", cfg.DefaultProfile)
	assert.True(t, cfg.DisableIPv6)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "/run/sysctl.d", cfg.Output.Dir)
	// Unspecified fields keep their defaults.
	assert.Equal(t, "99-kerntune.conf", cfg.Output.File)
}

func TestTargetPath(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Dir: "/etc/sysctl.d", File: "99-kerntune.conf"}}
	assert.Equal(t, "/etc/sysctl.d/99-kerntune.conf", cfg.TargetPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/artifacts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "artifacts"), got)

	got, err = ExpandPath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)
}

func TestWriteDefault(t *testing.T) {
	isolateConfig(t)

	path, err := WriteDefault()
	require.NoError(t, err)
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_profile: general")

	// Second call must not overwrite.
	path, err = WriteDefault()
	require.NoError(t, err)
	assert.Empty(t, path)
}
