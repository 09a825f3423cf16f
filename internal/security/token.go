package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/eventsapp/events-api/internal/core/domain"
)

// TokenService issues and validates the stateless bearer tokens used by the
// API chain. A single symmetric key signs everything; the server keeps no
// record of issued tokens, so a token stays valid until its expiry regardless
// of later account changes.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger
}

// NewTokenService builds a TokenService around the configured signing key and
// token lifetime.
func NewTokenService(key []byte, ttl time.Duration, log zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{key: key, ttl: ttl, now: time.Now, log: log}
}

// Issue signs a token carrying subject, issued-at, and expiry claims.
func (t *TokenService) Issue(subject string) (string, error) {
	now := t.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(t.key)
}

// ParseSubject verifies the signature and expiry and returns the subject
// claim. Every defect (malformed token, bad signature, wrong algorithm,
// expiry) collapses into domain.ErrInvalidToken so the caller cannot leak
// which check failed; the real cause is logged at debug level only.
func (t *TokenService) ParseSubject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil || !parsed.Valid {
		t.log.Debug().Err(err).Msg("token rejected")
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		t.log.Debug().Msg("token rejected: empty subject")
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

// IsValid reports whether ParseSubject would succeed.
func (t *TokenService) IsValid(token string) bool {
	_, err := t.ParseSubject(token)
	return err == nil
}
