// Package identity password hashing (Argon2id).
//
// cmd/security/password is the single source of truth for Argon2id
// parameters (defaults + env overrides) and the length policy. identity
// exposes the two operations the rest of the system needs and maps the
// low-level errors onto identity's error kinds.

package identity

import (
	"errors"

	"habitd/cmd/security/password"
)

// ErrMalformedDigest reports a stored password hash that cannot be parsed.
// This is a data integrity problem, not an authentication failure: callers
// must surface it as an internal error and log it for operators.
var ErrMalformedDigest = errors.New("malformed password digest")

// HashPassword returns a PHC-style Argon2id digest for plaintext.
// Policy violations (too short/long) come back as ErrInvalidInput kinds so
// the API layer can map them to 400 instead of 500.
func HashPassword(plaintext string) (string, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		// Invalid env is an operational error, not a weak fallback.
		return "", err
	}

	enc, err := cfg.Hash(plaintext)
	if err != nil {
		switch {
		case errors.Is(err, password.ErrPasswordTooShort):
			return "", OpError{Op: "identity.HashPassword", Kind: ErrInvalidInput, Msg: "password too short"}
		case errors.Is(err, password.ErrPasswordTooLong):
			return "", OpError{Op: "identity.HashPassword", Kind: ErrInvalidInput, Msg: "password too long"}
		default:
			return "", err
		}
	}

	return enc, nil
}

// VerifyPassword checks plaintext against a stored Argon2id digest.
// Returns (false, nil) on a plain mismatch and (false, ErrMalformedDigest)
// when the stored digest is not in the expected self-describing format.
func VerifyPassword(plaintext string, encodedDigest string) (bool, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		return false, err
	}

	ok, err := cfg.Verify(encodedDigest, plaintext)
	if err != nil {
		if errors.Is(err, password.ErrInvalidHash) {
			return false, ErrMalformedDigest
		}
		return false, err
	}
	return ok, nil
}
