package app

import (
	"errors"

	"habitd/cmd/security/token"
)

// ValidateSecurityConfig enforces habitd's startup security policy.
// Fail-fast: a missing or weak signing key must stop the process before
// it serves a single request.
func ValidateSecurityConfig(cfg Config) error {
	if _, err := token.SecretFromEnv(32); err != nil {
		switch {
		case errors.Is(err, token.ErrSecretMissing):
			return errors.New("security policy: " + token.SecretEnvKey + " is missing")
		case errors.Is(err, token.ErrSecretTooShort):
			return errors.New("security policy: " + token.SecretEnvKey + " is too short (min 32 bytes)")
		default:
			return err
		}
	}

	if cfg.MongoURI == "" {
		return errors.New("security policy: HABIT_MONGO_URI is required, habitd has no in-memory mode")
	}

	return nil
}
