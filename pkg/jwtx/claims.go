// Package jwtx mints and verifies the EdDSA-signed session tokens handed to
// clients after login.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session tokens.
const DefaultSessionTTL = 24 * time.Hour

var (
	ErrExpired      = errors.New("jwtx: token expired")
	ErrWrongIssuer  = errors.New("jwtx: issuer mismatch")
	ErrInvalidToken = errors.New("jwtx: invalid token")
)

// Claims are the session-token claims. Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims

	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims for a user.
func NewSessionClaims(uid, email, displayName, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Email:       email,
		DisplayName: displayName,
	}
}

// ValidateExpiry checks the exp claim against the current time.
func (c Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// ValidateIssuer checks the iss claim against the expected issuer.
func (c Claims) ValidateIssuer(issuer string) error {
	if c.Issuer != issuer {
		return ErrWrongIssuer
	}
	return nil
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in a bad way anyway
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
