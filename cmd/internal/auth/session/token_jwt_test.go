package session

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testManager(t *testing.T) Manager {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Secret = []byte("0123456789abcdef0123456789abcdef")

	mgr, err := NewHS256Manager(cfg)
	if err != nil {
		t.Fatalf("NewHS256Manager: %v", err)
	}
	return mgr
}

func TestIssueAndVerify(t *testing.T) {
	mgr := testManager(t)
	now := time.Now().UTC()

	tok, exp, err := mgr.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if want := now.Add(24 * time.Hour); !exp.Equal(want) {
		t.Fatalf("exp=%v want=%v", exp, want)
	}

	claims, err := mgr.Verify(tok, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("subject=%q", claims.Subject)
	}
	if claims.Issuer != "habitd" {
		t.Fatalf("issuer=%q", claims.Issuer)
	}
}

func TestVerify_ExpiryWindow(t *testing.T) {
	mgr := testManager(t)
	now := time.Unix(1_700_000_000, 0).UTC()

	tok, _, err := mgr.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Valid throughout [t, t+24h).
	for _, at := range []time.Time{now, now.Add(12 * time.Hour), now.Add(24*time.Hour - time.Second)} {
		if _, err := mgr.Verify(tok, at); err != nil {
			t.Fatalf("Verify at %v: %v", at, err)
		}
	}

	// Rejected at and after t+24h.
	for _, at := range []time.Time{now.Add(24 * time.Hour), now.Add(25 * time.Hour)} {
		_, err := mgr.Verify(tok, at)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify at %v: expected ErrInvalidToken, got %v", at, err)
		}
		if CauseOf(err) != CauseExpired {
			t.Fatalf("Verify at %v: cause=%q want %q", at, CauseOf(err), CauseExpired)
		}
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	mgr := testManager(t)
	now := time.Now().UTC()

	tok, _, err := mgr.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}

	// Flip one signature character at a time; every variant must fail.
	// XOR-ing bit 4 of the 6-bit symbol guarantees the change survives
	// base64url decoding even in the final, partially-used character.
	const b64url = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	sig := parts[2]
	for i := 0; i < len(sig); i++ {
		idx := strings.IndexByte(b64url, sig[i])
		if idx < 0 {
			t.Fatalf("unexpected signature character %q", sig[i])
		}
		flipped := []byte(sig)
		flipped[i] = b64url[idx^16]
		bad := parts[0] + "." + parts[1] + "." + string(flipped)
		if _, err := mgr.Verify(bad, now); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("flip at %d: expected ErrInvalidToken, got %v", i, err)
		}
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	mgr := testManager(t)
	now := time.Now().UTC()

	tok, _, err := mgr.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	bad := parts[0] + "." + string(payload) + "." + parts[2]

	// A payload bit-flip must fail validation, never decode a different subject.
	if _, err := mgr.Verify(bad, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	mgr := testManager(t)

	other := DefaultConfig()
	other.Secret = []byte("ffffffffffffffffffffffffffffffff")
	otherMgr, err := NewHS256Manager(other)
	if err != nil {
		t.Fatalf("NewHS256Manager: %v", err)
	}

	now := time.Now().UTC()
	tok, _, err := otherMgr.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = mgr.Verify(tok, now)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if CauseOf(err) != CauseSignature {
		t.Fatalf("cause=%q want %q", CauseOf(err), CauseSignature)
	}
}

func TestVerify_Malformed(t *testing.T) {
	mgr := testManager(t)
	now := time.Now().UTC()

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := mgr.Verify(tok, now)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
		if CauseOf(err) != CauseMalformed {
			t.Fatalf("Verify(%q): cause=%q want %q", tok, CauseOf(err), CauseMalformed)
		}
	}
}

func TestNewHS256Manager_RequiresSecret(t *testing.T) {
	_, err := NewHS256Manager(DefaultConfig())
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestIssue_RequiresSubject(t *testing.T) {
	mgr := testManager(t)
	if _, _, err := mgr.Issue("", time.Now().UTC()); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}
