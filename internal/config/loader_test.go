package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, 28, cfg.Log.MaxAgeDays)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, "log:\n  level: debug\n  format: json\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset fields keep embedded defaults")
}

func TestLoad_EnvLevelWins(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ExpandsLogFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	path := writeConfig(t, "log:\n  file: ~/logs/lockrun.log\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "lockrun.log"), cfg.Log.File)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "log: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/lockrun.yaml")
	assert.Equal(t, "/etc/lockrun.yaml", DefaultPath())

	home := t.TempDir()
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	assert.Equal(t, filepath.Join(home, ".config", "lockrun", "config.yaml"), DefaultPath())
}

func TestLoad_UnreachablePathIsAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows reports a missing path here")
	}
	t.Setenv(EnvLogLevel, "")
	file := writeConfig(t, "log:\n  level: debug\n")

	// 路径穿过一个普通文件，stat 得到 ENOTDIR 而不是 ErrNotExist
	_, err := Load(filepath.Join(file, "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_PermissionDeniedIsAnError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs POSIX permissions and a non-root user")
	}
	t.Setenv(EnvLogLevel, "")
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "config.yaml"), []byte("log:\n  level: debug\n"), 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	_, err := Load(filepath.Join(locked, "config.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
}
