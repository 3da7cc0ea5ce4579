package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"habitd/cmd/identity"
	"habitd/cmd/internal/auth/session"
)

// Gate failure modes. Both map to 401; they are separated so callers and
// tests can tell "no credential presented" from "credential rejected".
var (
	// ErrMissingCredential is returned when the Authorization header is
	// absent or not exactly `Bearer <token>`.
	ErrMissingCredential = errors.New("missing bearer credential")

	// ErrUnauthorized is returned when the token fails validation or its
	// subject no longer resolves to a user. The two cases share one error
	// so a stale token cannot be used to probe account existence.
	ErrUnauthorized = errors.New("unauthorized")
)

// Authenticator is the authorization gate every protected operation passes
// through: it extracts the bearer token, validates it, and re-resolves the
// subject to a user record on every request. Nothing is cached and token
// life is never extended.
type Authenticator struct {
	log    *slog.Logger
	tokens session.Manager
	users  identity.Store
}

// NewAuthenticator wires the gate. All dependencies are required.
func NewAuthenticator(log *slog.Logger, tokens session.Manager, users identity.Store) (*Authenticator, error) {
	if log == nil {
		log = slog.Default()
	}
	if tokens == nil {
		return nil, errors.New("authapi: nil token manager")
	}
	if users == nil {
		return nil, errors.New("authapi: nil user store")
	}
	return &Authenticator{log: log, tokens: tokens, users: users}, nil
}

// Authenticate resolves the request's bearer token to a user record.
//
// Failure mapping:
//   - no/garbled Authorization header -> ErrMissingCredential
//   - invalid token (signature/malformed/expired) -> ErrUnauthorized
//   - subject no longer resolvable -> ErrUnauthorized (never a not-found,
//     to avoid leaking account existence through a different status)
//   - store failure -> the store error, to surface as 500 upstream
func (a *Authenticator) Authenticate(r *http.Request) (identity.User, error) {
	tok := bearerToken(r)
	if tok == "" {
		return identity.User{}, ErrMissingCredential
	}

	claims, err := a.tokens.Verify(tok, time.Now().UTC())
	if err != nil {
		// The cause stays server-side; the caller only sees "unauthorized".
		a.log.Debug("auth.gate.token.reject", "cause", session.CauseOf(err))
		return identity.User{}, ErrUnauthorized
	}

	u, err := a.users.GetUserByEmail(r.Context(), claims.Subject)
	if err != nil {
		if identity.IsNotFound(err) {
			a.log.Debug("auth.gate.subject.stale")
			return identity.User{}, ErrUnauthorized
		}
		return identity.User{}, err
	}

	return u, nil
}

// Require authenticates the request and writes the 401/500 response itself
// when it fails. Protected handlers call it first and return on !ok.
func (a *Authenticator) Require(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	u, err := a.Authenticate(r)
	if err == nil {
		return u, true
	}

	switch {
	case errors.Is(err, ErrMissingCredential):
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
	default:
		a.log.Error("auth.gate.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
	return identity.User{}, false
}

// bearerToken extracts the token from an `Authorization: Bearer <token>`
// header. Anything else (missing scheme, extra parts, empty token) yields "".
func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	parts := strings.Fields(raw)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
