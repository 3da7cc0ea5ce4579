package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken is the single outward failure for token validation.
	// Callers must not distinguish why a token was rejected.
	ErrInvalidToken = errors.New("invalid token")

	// ErrConfig is returned for invalid session configuration.
	ErrConfig = errors.New("invalid session config")
)

// Internal cause codes carried by TokenError.
const (
	CauseSignature = "signature"
	CauseMalformed = "malformed"
	CauseExpired   = "expired"
	CauseClaims    = "claims"
)

// TokenError wraps ErrInvalidToken with the internal failure cause.
// The cause exists for observability (log fields); it is not part of the
// API contract and must not be exposed to clients.
type TokenError struct {
	Cause string
}

func (e TokenError) Error() string {
	if e.Cause == "" {
		return ErrInvalidToken.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidToken.Error(), e.Cause)
}

func (e TokenError) Unwrap() error { return ErrInvalidToken }

// CauseOf returns the internal cause code of a token validation error,
// or "" when err is not a TokenError.
func CauseOf(err error) string {
	var te TokenError
	if errors.As(err, &te) {
		return te.Cause
	}
	return ""
}
