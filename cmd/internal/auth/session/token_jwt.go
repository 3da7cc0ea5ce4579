package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the minimal identity envelope a validated token vouches for.
type Claims struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Manager mints and validates session tokens.
type Manager interface {
	// Issue builds the claim set {subject, exp = now + TTL}, signs it with
	// the process secret, and returns the serialized token plus its expiry.
	Issue(subject string, now time.Time) (token string, exp time.Time, err error)

	// Verify checks the signature against the process secret, then parses
	// and validates the claim set. No field is trusted before the signature
	// check succeeds. Any failure collapses to ErrInvalidToken (TokenError
	// carries the internal cause).
	Verify(token string, now time.Time) (Claims, error)
}

type hs256Manager struct {
	issuer    string
	ttl       time.Duration
	clockSkew time.Duration

	secret []byte
}

// NewHS256Manager builds a Manager signing with HMAC-SHA256.
// A missing secret is refused: an unsigned or weakly-signed token must
// never be minted.
func NewHS256Manager(cfg Config) (Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrConfig
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultConfig().TokenTTL
	}

	return &hs256Manager{
		issuer:    cfg.Issuer,
		ttl:       ttl,
		clockSkew: cfg.ClockSkew,
		secret:    cfg.Secret,
	}, nil
}

func (m *hs256Manager) Issue(subject string, now time.Time) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("session: empty subject")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	exp := now.Add(m.ttl)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (m *hs256Manager) Verify(tokenString string, now time.Time) (Claims, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, TokenError{Cause: CauseMalformed}
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, TokenError{Cause: CauseExpired}
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, TokenError{Cause: CauseSignature}
		default:
			return Claims{}, TokenError{Cause: CauseClaims}
		}
	}

	if claims.Subject == "" {
		return Claims{}, TokenError{Cause: CauseClaims}
	}

	out := Claims{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}
