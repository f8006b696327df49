// Package config loads server configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BlackWLN/seafight/internal/channel"
)

// Config is the server process configuration
type Config struct {
	Server struct {
		PipeDir string `yaml:"pipe_dir"`
	} `yaml:"server"`

	Storage struct {
		Type string `yaml:"type"` // "memory" or "redis"
	} `yaml:"storage"`

	Redis struct {
		URL          string `yaml:"url"`
		PoolSize     int    `yaml:"pool_size"`
		MinIdleConns int    `yaml:"min_idle_conns"`
	} `yaml:"redis"`

	Log struct {
		Level string `yaml:"level"` // debug, info, warn, error
	} `yaml:"log"`
}

// Default returns the built-in configuration
func Default() Config {
	var c Config
	c.Server.PipeDir = channel.DefaultDir
	c.Storage.Type = "memory"
	c.Redis.URL = "redis://localhost:6379"
	c.Redis.PoolSize = 10
	c.Redis.MinIdleConns = 2
	c.Log.Level = "info"
	return c
}

// Load reads the config file at path if it exists, then applies
// environment overrides (SEAFIGHT_PIPE_DIR, STORAGE_TYPE, REDIS_URL,
// LOG_LEVEL). A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("SEAFIGHT_PIPE_DIR"); v != "" {
		cfg.Server.PipeDir = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

// LogLevel maps the configured level name onto slog's levels,
// defaulting to info
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
