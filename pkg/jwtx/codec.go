package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification errors. Callers treat all three identically (silently reject);
// the distinction exists for operator diagnostics only.
var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
)

// Codec issues and verifies compact HS256-signed session tokens. The key is
// immutable for the process lifetime and safe for concurrent use.
type Codec struct {
	key []byte
	ttl time.Duration
}

// NewCodec wraps the given signing key. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewCodec(key []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{key: key, ttl: ttl}
}

// TTL returns the validity window applied to issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue encodes (userID, subject) into a signed, time-bounded token.
func (c *Codec) Issue(userID int64, subject string) (string, error) {
	claims := NewClaims(userID, subject, c.ttl, time.Now().UTC())
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Verify parses the three-part structure, checks the signature and validates
// expiry. Every failure path returns a typed error; nothing panics past this
// boundary.
func (c *Codec) Verify(raw string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(*jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
