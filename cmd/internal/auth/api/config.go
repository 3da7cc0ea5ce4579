package authapi

import (
	"os"
	"strconv"
	"strings"
)

// Config controls the HTTP auth boundary.
type Config struct {
	// MaxBodyBytes caps request bodies on auth endpoints.
	MaxBodyBytes int64
}

// DefaultConfig returns defaults suitable for development.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes: 1 << 20, // 1 MiB
	}
}

// LoadConfigFromEnv loads auth API configuration from environment variables.
//
// Optional:
//   - HABIT_AUTH_MAX_BODY_BYTES
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("HABIT_AUTH_MAX_BODY_BYTES")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}

	return cfg
}
