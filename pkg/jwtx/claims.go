package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ltj54/restructuring/pkg/idx"
)

// DefaultTokenTTL is the session token validity window.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the fields carried inside a signed session token. The token
// intentionally carries identity only, never authority: roles are looked up
// live at resolution time so privilege changes apply without re-issuing.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric id of the account the token was issued for.
	UserID int64 `json:"userId"`
}

// NewClaims builds claims for a fresh token: sub is the user's stable login
// identifier (email), iat/exp bound the validity window, and jti is a unique
// per-token identifier reserved for future revocation support.
func NewClaims(userID int64, subject string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
		UserID: userID,
	}
}

// ValidateExpiry enforces exp > now independently of library parsing, so
// expiry is never merely advisory.
func (c *Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil {
		return ErrMalformed
	}
	if time.Now().UTC().After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
