package authapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"habitd/cmd/identity"
	"habitd/cmd/internal/auth/session"
)

// Handler wires the HTTP auth endpoints to the identity store and the
// token manager.
type Handler struct {
	log *slog.Logger
	cfg Config

	users  identity.Store
	tokens session.Manager
	gate   *Authenticator
}

// NewHandler constructs the auth Handler and its Authorization Gate.
func NewHandler(log *slog.Logger, cfg Config, users identity.Store, tokens session.Manager) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}

	gate, err := NewAuthenticator(log, tokens, users)
	if err != nil {
		return nil, err
	}

	return &Handler{
		log:    log,
		cfg:    cfg,
		users:  users,
		tokens: tokens,
		gate:   gate,
	}, nil
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/api/auth/register", h.handleRegister)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/me", h.handleMe)
}

// Gate returns the Authorization Gate so other protected route groups
// (habits) can authenticate through the same path.
func (h *Handler) Gate() *Authenticator {
	if h == nil {
		return nil
	}
	return h.gate
}

// ---- handlers ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	username := identity.NormalizeUsername(req.Username)
	email := identity.NormalizeEmail(req.Email)
	if username == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "username, email and password are required")
		return
	}

	digest, err := identity.HashPassword(req.Password)
	if err != nil {
		if identity.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", "password does not meet policy")
			return
		}
		// RNG or configuration failure is fatal to this request, never
		// silently skipped.
		h.log.Error("auth.register.hash.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	// Single atomic insert: the store's unique email index is the only
	// duplicate defense, so concurrent registrations cannot both succeed.
	_, err = h.users.CreateUser(r.Context(), identity.CreateUserInput{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		switch {
		case identity.IsConflict(err):
			writeError(w, http.StatusConflict, "conflict", "email already registered")
		case identity.IsInvalidInput(err):
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid input")
		default:
			h.log.Error("auth.register.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		}
		return
	}

	h.log.Info("auth.register.ok", "email", email)
	writeJSON(w, http.StatusCreated, registerResponse{Message: "user registered successfully"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	email := identity.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	u, err := h.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		if identity.IsNotFound(err) {
			// Login reveals account non-existence (404) while stale-token
			// resolution hides it (401). Kept as-is from the upstream
			// behavior; see DESIGN.md.
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		h.log.Error("auth.login.lookup.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	ok, err := identity.VerifyPassword(req.Password, u.PasswordHash)
	if err != nil {
		// A malformed stored digest is a data integrity bug, not a bad
		// password. Loud log for operators, opaque 500 for the caller.
		h.log.Error("auth.login.digest.malformed", "email", email, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid password")
		return
	}

	tok, _, err := h.tokens.Issue(u.Email, time.Now().UTC())
	if err != nil {
		h.log.Error("auth.login.mint.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	h.log.Info("auth.login.ok", "email", email)
	writeJSON(w, http.StatusOK, loginResponse{Token: tok})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	u, ok := h.gate.Require(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, meResponse{Username: u.Username, Email: u.Email})
}
