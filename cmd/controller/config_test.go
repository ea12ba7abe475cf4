package main

import (
	"os"
	"path/filepath"
	"rgb-controller/internal/domain/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	opts, err := loadConfig(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, model.ModeDesktop, opts.cfg.Mode)
	assert.Equal(t, "127.0.0.1:8420", opts.cfg.Listen)
	assert.Equal(t, "x", opts.cfg.BrightnessFormula)
	assert.Equal(t, model.DefaultHelpURL, opts.cfg.HelpURL)
	assert.True(t, opts.cfg.WatchColours)
	assert.False(t, opts.verbose)
}

func TestLoadConfig_FileFlagsAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "controller.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode: server
listen: 0.0.0.0:9000
preferences_path: /tmp/prefs.json
brightness_formula: x * 0.8
dbus_timeout: 2s
watch_colours: true
`), 0o644))

	opts, err := loadConfig([]string{"--verbose", "--no-watch", "--brightness-formula", "x / 2"},
		env(map[string]string{"CONFIG_PATH": path, "LISTEN_ADDR": "127.0.0.1:9100"}))
	require.NoError(t, err)

	assert.True(t, opts.verbose)
	assert.Equal(t, path, opts.configPath)
	assert.Equal(t, model.ModeServer, opts.cfg.Mode)
	assert.Equal(t, "127.0.0.1:9100", opts.cfg.Listen)
	assert.Equal(t, "/tmp/prefs.json", opts.cfg.PreferencesPath)
	assert.Equal(t, "x / 2", opts.cfg.BrightnessFormula)
	assert.Equal(t, 2*time.Second, opts.cfg.DBusTimeout)
	assert.False(t, opts.cfg.WatchColours)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig([]string{"--mode", "kiosk"}, env(nil))
	assert.ErrorContains(t, err, "unknown mode")

	_, err = loadConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, env(nil))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = loadConfig([]string{"--ui-dir", t.TempDir()}, env(nil))
	assert.Error(t, err)

	_, err = loadConfig([]string{"--bogus"}, env(nil))
	assert.Error(t, err)
}
