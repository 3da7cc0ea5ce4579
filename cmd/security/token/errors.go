package token

import "errors"

// Public, stable errors for callers.
var (
	ErrSecretMissing  = errors.New("session secret key missing")
	ErrSecretTooShort = errors.New("session secret key too short")
)
