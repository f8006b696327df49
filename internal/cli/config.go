package cli

import (
	"os"

	"github.com/BlackWLN/seafight/internal/channel"
)

// Config holds CLI configuration
type Config struct {
	PipeDir string
	Login   string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		PipeDir: getEnvOrDefault("SEAFIGHT_PIPE_DIR", channel.DefaultDir),
		Login:   os.Getenv("SEAFIGHT_LOGIN"),
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
