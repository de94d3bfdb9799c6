package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RunClawd/runclawd/pkg/types"
)

// noWd stands in for os.Getwd in tests that never enter local mode.
func noWd() (string, error) {
	return "", os.ErrInvalid
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(func(string) string { return "" }, noWd, false)
	require.NoError(t, err)

	assert.Equal(t, DefaultInstallDir, cfg.InstallDir)
	assert.Equal(t, DefaultVolume, cfg.Volume)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 300*time.Second, cfg.PollDeadline)
	assert.Equal(t, 500, cfg.LogTail)
	assert.Equal(t, types.ModeQuickTunnel, cfg.Mode())
	assert.Empty(t, cfg.PublicURL())
}

func TestLoadEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvInstallDir:  t.TempDir(),
		EnvTunnelToken: "tok-123",
		EnvHostname:    "clawd.example.com",
	}
	cfg, err := load(func(k string) string { return env[k] }, noWd, false)
	require.NoError(t, err)

	assert.Equal(t, env[EnvInstallDir], cfg.InstallDir)
	assert.Equal(t, types.ModeTokenTunnel, cfg.Mode())
	assert.Equal(t, "https://clawd.example.com", cfg.PublicURL())
}

func TestLoadLocalUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg, err := load(func(string) string { return "" }, func() (string, error) { return dir, nil }, true)
	require.NoError(t, err)

	assert.True(t, cfg.Local)
	assert.Equal(t, dir, cfg.InstallDir)
}

func TestLoadLocalEnvOverrideWins(t *testing.T) {
	override := t.TempDir()
	cfg, err := load(func(k string) string {
		if k == EnvInstallDir {
			return override
		}
		return ""
	}, noWd, true)
	require.NoError(t, err)

	assert.Equal(t, override, cfg.InstallDir)
}

func TestPublicURLRequiresToken(t *testing.T) {
	// A hostname without a token still means quick-tunnel mode, so no
	// up-front URL.
	cfg, err := load(func(k string) string {
		if k == EnvHostname {
			return "clawd.example.com"
		}
		return ""
	}, noWd, false)
	require.NoError(t, err)
	assert.Equal(t, types.ModeQuickTunnel, cfg.Mode())
	assert.Empty(t, cfg.PublicURL())
}

func TestApplyFileOverrides(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
volume: other-data
backupDir: /srv/backups
services:
  tunnel: tunnel-helper
pollInterval: 100ms
pollDeadline: 5s
logTail: 50
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0644))

	cfg, err := load(func(k string) string {
		if k == EnvInstallDir {
			return dir
		}
		return ""
	}, noWd, false)
	require.NoError(t, err)

	assert.Equal(t, "other-data", cfg.Volume)
	assert.Equal(t, "/srv/backups", cfg.BackupDir)
	assert.Equal(t, "tunnel-helper", cfg.Services.Tunnel)
	assert.Equal(t, "gateway", cfg.Services.Gateway) // untouched
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.PollDeadline)
	assert.Equal(t, 50, cfg.LogTail)
}

func TestApplyFileMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("volume: [unterminated"), 0644))

	_, err := load(func(k string) string {
		if k == EnvInstallDir {
			return dir
		}
		return ""
	}, noWd, false)
	assert.Error(t, err)
}
