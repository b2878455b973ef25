package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mobigesture/jobboard/internal/ports"
)

// CookieSigner produces the signed value carried by the session cookie: a
// compact HMAC JWT whose subject is the session id. Only the id crosses the
// wire; the session record itself stays in the server-side store.
type CookieSigner struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

var _ ports.SessionCodec = (*CookieSigner)(nil)

// NewCookieSigner builds a signer for the configured algorithm name
// (sha256, sha384 or sha512) and cookie lifetime.
func NewCookieSigner(secret, algorithm string, ttl time.Duration) (*CookieSigner, error) {
	if secret == "" {
		return nil, errors.New("session cookie secret is required")
	}
	method, err := signingMethod(algorithm)
	if err != nil {
		return nil, err
	}
	return &CookieSigner{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

func (c *CookieSigner) Sign(sessionID string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(c.method, jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	})
	return token.SignedString(c.secret)
}

// Parse validates the cookie value and returns the embedded session id.
// Signature and expiry failures are indistinguishable to the caller: the
// cookie simply carries no usable session.
func (c *CookieSigner) Parse(value string) (string, error) {
	parsed, err := jwt.ParseWithClaims(value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("session cookie has no subject")
	}
	return claims.Subject, nil
}

func signingMethod(algorithm string) (jwt.SigningMethod, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", "sha256":
		return jwt.SigningMethodHS256, nil
	case "sha384":
		return jwt.SigningMethodHS384, nil
	case "sha512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported session cookie algorithm %q", algorithm)
	}
}
