package authapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"habitd/cmd/internal/auth/session"
)

func newTestHandler(t *testing.T) (*Handler, *memStore, session.Manager) {
	t.Helper()

	// Low-cost Argon2 settings keep handler tests fast.
	t.Setenv("HABIT_ARGON2_MEMORY_KIB", "8192")
	t.Setenv("HABIT_ARGON2_ITERATIONS", "1")

	sessCfg := session.DefaultConfig()
	sessCfg.Secret = []byte("0123456789abcdef0123456789abcdef")
	tokens, err := session.NewHS256Manager(sessCfg)
	if err != nil {
		t.Fatalf("NewHS256Manager: %v", err)
	}

	store := newMemStore()
	h, err := NewHandler(nil, DefaultConfig(), store, tokens)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h, store, tokens
}

func serve(h *Handler, r *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.Register(mux)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func postJSON(path, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestRegisterLoginMe_HappyPath(t *testing.T) {
	h, _, _ := newTestHandler(t)

	w := serve(h, postJSON("/api/auth/register", `{"username":"alice","email":"a@x.com","password":"pw"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", w.Code, w.Body.String())
	}

	w = serve(h, postJSON("/api/auth/login", `{"email":"a@x.com","password":"pw"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", w.Code, w.Body.String())
	}
	var lr loginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &lr); err != nil || lr.Token == "" {
		t.Fatalf("login body=%s err=%v", w.Body.String(), err)
	}

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+lr.Token)
	w = serve(h, r)
	if w.Code != http.StatusOK {
		t.Fatalf("me status=%d body=%s", w.Code, w.Body.String())
	}
	var me meResponse
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("me body: %v", err)
	}
	if me.Username != "alice" || me.Email != "a@x.com" {
		t.Fatalf("me=%+v", me)
	}
	if strings.Contains(w.Body.String(), "argon2id") {
		t.Fatalf("response leaks password digest: %s", w.Body.String())
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, _, _ := newTestHandler(t)

	w := serve(h, postJSON("/api/auth/register", `{"username":"alice","email":"a@x.com","password":"pw"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("first register status=%d", w.Code)
	}

	w = serve(h, postJSON("/api/auth/register", `{"username":"bob","email":"a@x.com","password":"pw2"}`))
	if w.Code != http.StatusConflict {
		t.Fatalf("second register status=%d want 409", w.Code)
	}
}

func TestRegister_EmailCaseIsNormalized(t *testing.T) {
	h, _, _ := newTestHandler(t)

	w := serve(h, postJSON("/api/auth/register", `{"username":"alice","email":"Alice@X.com","password":"pw"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d", w.Code)
	}

	w = serve(h, postJSON("/api/auth/register", `{"username":"bob","email":"alice@x.com","password":"pw"}`))
	if w.Code != http.StatusConflict {
		t.Fatalf("re-register status=%d want 409", w.Code)
	}

	w = serve(h, postJSON("/api/auth/login", `{"email":"ALICE@x.COM","password":"pw"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestRegister_InvalidRequests(t *testing.T) {
	h, _, _ := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{{{`},
		{name: "missing username", body: `{"email":"a@x.com","password":"pw"}`},
		{name: "missing email", body: `{"username":"alice","password":"pw"}`},
		{name: "missing password", body: `{"username":"alice","email":"a@x.com"}`},
		{name: "unknown field", body: `{"username":"alice","email":"a@x.com","password":"pw","admin":true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(h, postJSON("/api/auth/register", tc.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d want 400", w.Code)
			}
		})
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _, _ := newTestHandler(t)

	w := serve(h, postJSON("/api/auth/login", `{"email":"unknown@x.com","password":"any"}`))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d want 404", w.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _, _ := newTestHandler(t)

	if w := serve(h, postJSON("/api/auth/register", `{"username":"alice","email":"a@x.com","password":"pw"}`)); w.Code != http.StatusCreated {
		t.Fatalf("register status=%d", w.Code)
	}

	w := serve(h, postJSON("/api/auth/login", `{"email":"a@x.com","password":"wrongpw"}`))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401", w.Code)
	}
}

func TestLogin_MalformedStoredDigest(t *testing.T) {
	h, store, _ := newTestHandler(t)

	if w := serve(h, postJSON("/api/auth/register", `{"username":"alice","email":"a@x.com","password":"pw"}`)); w.Code != http.StatusCreated {
		t.Fatalf("register status=%d", w.Code)
	}

	// Corrupt the stored digest: login must surface an opaque 500, not 401.
	store.mu.Lock()
	u := store.users["a@x.com"]
	u.PasswordHash = "not-a-digest"
	store.users["a@x.com"] = u
	store.mu.Unlock()

	w := serve(h, postJSON("/api/auth/login", `{"email":"a@x.com","password":"pw"}`))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "digest") || strings.Contains(w.Body.String(), "hash") {
		t.Fatalf("response leaks internal detail: %s", w.Body.String())
	}
}

func TestMe_Unauthorized(t *testing.T) {
	h, _, tokens := newTestHandler(t)

	if w := serve(h, postJSON("/api/auth/register", `{"username":"alice","email":"a@x.com","password":"pw"}`)); w.Code != http.StatusCreated {
		t.Fatalf("register status=%d", w.Code)
	}

	expired, _, err := tokens.Issue("a@x.com", time.Now().UTC().Add(-25*time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Token abc"},
		{name: "scheme only", header: "Bearer"},
		{name: "extra parts", header: "Bearer a b"},
		{name: "garbage token", header: "Bearer garbage"},
		{name: "expired token", header: "Bearer " + expired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := serve(h, r)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status=%d want 401", w.Code)
			}
			for _, leak := range []string{"expired", "signature", "malformed"} {
				if strings.Contains(w.Body.String(), leak) {
					t.Fatalf("401 body leaks cause %q: %s", leak, w.Body.String())
				}
			}
		})
	}
}

func TestMe_StaleSubjectIsUnauthorized(t *testing.T) {
	h, store, tokens := newTestHandler(t)

	if w := serve(h, postJSON("/api/auth/register", `{"username":"alice","email":"a@x.com","password":"pw"}`)); w.Code != http.StatusCreated {
		t.Fatalf("register status=%d", w.Code)
	}

	tok, _, err := tokens.Issue("a@x.com", time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// User vanishes while the token is still cryptographically valid:
	// the gate must answer 401, not 404.
	store.delete("a@x.com")

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	w := serve(h, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _, _ := newTestHandler(t)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d want 405", w.Code)
	}

	w = serve(h, postJSON("/me", `{}`))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d want 405", w.Code)
	}
}
