package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp", cfg.Server.PipeDir)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  pipe_dir: /var/run/seafight
storage:
  type: redis
redis:
  url: redis://cache:6379
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/run/seafight", cfg.Server.PipeDir)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "redis://cache:6379", cfg.Redis.URL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	// Unset keys keep their defaults
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SEAFIGHT_PIPE_DIR", "/run/games")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/run/games", cfg.Server.PipeDir)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
}
