package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 20*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, 2*time.Second, cfg.LookupTimeout)
	assert.Equal(t, "auto", cfg.DefaultMode)
	assert.False(t, cfg.StrictManual)
	assert.Equal(t, "lanscan.log", filepath.Base(cfg.LogFile))
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `
probe_timeout: 150ms
lookup_timeout: 500ms
interface: eth0
default_mode: manual
strict_manual: true
live_rows: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 150*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.LookupTimeout)
	assert.Equal(t, "eth0", cfg.Interface)
	assert.Equal(t, "manual", cfg.DefaultMode)
	assert.True(t, cfg.StrictManual)
	assert.Equal(t, 5, cfg.LiveRows)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("LANSCAN_PROBE_TIMEOUT", "75ms")

	cfg, err := LoadConfig(writeConfig(t, "log_level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, 75*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := LoadConfig(writeConfig(t, "probe_timeout: 0s\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe_timeout")
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel("bogus"))
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(log.WarnLevel, "")
	l.SetOutput(&buf)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lanscan.log")
	l := NewLogger(log.DebugLevel, path)
	l.Debug("probe %s", "10.0.0.1")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "probe 10.0.0.1")
}
