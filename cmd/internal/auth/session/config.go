package session

import (
	"fmt"
	"os"
	"time"

	"habitd/cmd/security/token"
)

// minSecretBytes is the minimum HMAC-SHA256 key length accepted at startup.
const minSecretBytes = 32

// Config defines runtime configuration for the session subsystem.
//
// It is intentionally explicit and environment-driven so that production
// deployments can tune token parameters without code changes.
type Config struct {
	// Issuer is the value set in the "iss" claim of session tokens.
	Issuer string

	// TokenTTL is the fixed validity window applied at mint time.
	TokenTTL time.Duration

	// ClockSkew is the allowed time skew during validation. The default
	// is zero so a token minted at t is rejected exactly at t+TTL.
	ClockSkew time.Duration

	// Secret is the symmetric signing key, loaded once at startup and
	// immutable for the process lifetime.
	Secret []byte
}

// DefaultConfig returns defaults suitable for development.
// The secret has no default: it must come from the environment.
func DefaultConfig() Config {
	return Config{
		Issuer:   "habitd",
		TokenTTL: 24 * time.Hour,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Required:
//   - HABIT_SECRET_KEY (>= 32 bytes)
//
// Optional (durations must be valid Go duration strings):
//   - HABIT_AUTH_ISSUER
//   - HABIT_AUTH_TOKEN_TTL
//   - HABIT_AUTH_CLOCK_SKEW
//
// A missing or weak secret is a startup error, never a per-request one.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("HABIT_AUTH_ISSUER"); v != "" {
		cfg.Issuer = v
	}

	if v := os.Getenv("HABIT_AUTH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: HABIT_AUTH_TOKEN_TTL", ErrConfig)
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv("HABIT_AUTH_CLOCK_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("%w: HABIT_AUTH_CLOCK_SKEW", ErrConfig)
		}
		cfg.ClockSkew = d
	}

	secret, err := token.SecretFromEnv(minSecretBytes)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	cfg.Secret = secret

	return cfg, nil
}
