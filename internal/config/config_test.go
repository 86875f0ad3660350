package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.FinderConcurrency)
	assert.Equal(t, 10*time.Second, cfg.BookingTimeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\nnats_url: nats://files:4222\nfinder_concurrency: 8\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("NATS_URL", "nats://env:4222")
	t.Setenv("PORT", "")
	t.Setenv("FINDER_CONCURRENCY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "nats://env:4222", cfg.NatsURL)
	assert.Equal(t, 8, cfg.FinderConcurrency)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("RATE_LIMIT_BURST", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}

func TestLoad_ClampsConcurrency(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FINDER_CONCURRENCY", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.FinderConcurrency)
}

func TestConfig_Location(t *testing.T) {
	loc, err := (&Config{}).Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = (&Config{Timezone: "UTC"}).Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = (&Config{Timezone: "Mars/Olympus"}).Location()
	assert.Error(t, err)
}
