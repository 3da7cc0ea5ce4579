package session

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigFromEnv_RequiresSecret(t *testing.T) {
	t.Setenv("HABIT_SECRET_KEY", "")

	_, err := LoadConfigFromEnv()
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadConfigFromEnv_RejectsShortSecret(t *testing.T) {
	t.Setenv("HABIT_SECRET_KEY", "too-short")

	_, err := LoadConfigFromEnv()
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("HABIT_SECRET_KEY", "0123456789abcdef0123456789abcdef")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL=%v want 24h", cfg.TokenTTL)
	}
	if cfg.Issuer != "habitd" {
		t.Fatalf("Issuer=%q", cfg.Issuer)
	}
	if cfg.ClockSkew != 0 {
		t.Fatalf("ClockSkew=%v want 0", cfg.ClockSkew)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("HABIT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("HABIT_AUTH_ISSUER", "habitd-test")
	t.Setenv("HABIT_AUTH_TOKEN_TTL", "1h")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.Issuer != "habitd-test" || cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadConfigFromEnv_BadTTL(t *testing.T) {
	t.Setenv("HABIT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("HABIT_AUTH_TOKEN_TTL", "-5m")

	if _, err := LoadConfigFromEnv(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}
