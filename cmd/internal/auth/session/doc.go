// Package session issues and validates habitd's bearer session tokens.
//
// Tokens are signed JWTs (HS256) binding a subject (the user's email) to
// an absolute expiry instant. Validation is stateless: there is no
// revocation, so a minted token stays valid until its expiry even if the
// user record changes afterwards.
//
// Failure policy: bad signature, malformed structure, and expiry all
// collapse to ErrInvalidToken for callers. The underlying cause is kept
// on TokenError for server-side logging only and must never reach a
// response body.
package session
