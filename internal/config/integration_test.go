package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHome points the config directory at a fresh temp dir.
func stubHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home) // Windows uses USERPROFILE
	t.Setenv(EnvHome, "")
	return home
}

func TestGlobalConfig(t *testing.T) {
	stubHome(t)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)

	// Subsequent calls return the same instance.
	cfg2 := GetGlobalConfig()
	assert.Same(t, cfg, cfg2)

	ResetGlobalConfigForTest()
	cfg3 := GetGlobalConfig()
	assert.NotSame(t, cfg, cfg3)
}

func TestConfigGetters(t *testing.T) {
	stubHome(t)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	cfg.Output.DefaultFormat = "json"
	cfg.Catalog.PageSize = 20
	cfg.Feed.Path = "/srv/feed"
	cfg.Logging.Level = "debug"
	cfg.Logging.File = "/tmp/test.log"

	assert.Equal(t, "json", GetDefaultOutputFormat())
	assert.Equal(t, 20, GetPageSize())
	assert.Equal(t, "/srv/feed", GetFeedPath())
	assert.Equal(t, "debug", GetLogLevel())
	assert.Equal(t, "/tmp/test.log", GetLogFile())
	assert.Equal(t, "debug", GetLoggingConfig().Level)
}

func TestEnsureConfigDir(t *testing.T) {
	home := stubHome(t)

	require.NoError(t, EnsureConfigDir())

	stat, err := os.Stat(filepath.Join(home, ".taskbatch"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	stubHome(t)
	tmpDir := t.TempDir()

	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)
	cfg := GetGlobalConfig()
	cfg.Logging.File = filepath.Join(tmpDir, "logs", "subdir", "test.log")

	require.NoError(t, EnsureLogDir())

	stat, err := os.Stat(filepath.Join(tmpDir, "logs", "subdir"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDirError(t *testing.T) {
	stubHome(t)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)
	cfg := GetGlobalConfig()

	// A regular file cannot be a parent directory.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	cfg.Logging.File = filepath.Join(blocker, "subdir", "test.log")

	assert.Error(t, EnsureLogDir())
}

func TestGetConfigDir(t *testing.T) {
	home := stubHome(t)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".taskbatch"), dir)

	t.Setenv(EnvHome, "/opt/taskbatch")
	dir, err = GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/opt/taskbatch", dir)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/taskbatch", "config.yaml"), path)
}

func TestResolveExportDir(t *testing.T) {
	t.Setenv(EnvHome, "/opt/taskbatch")

	cfg := Default()
	dir, err := cfg.ResolveExportDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/taskbatch", "exports"), dir)

	cfg.Dispatch.ExportDir = "/var/exports"
	dir, err = cfg.ResolveExportDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/exports", dir)
}
