package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs session tokens with an Ed25519 key. Keys are ephemeral: a
// restart invalidates outstanding sessions, which is acceptable for this
// service and avoids key storage entirely.
type Signer struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// NewEphemeralSigner generates a fresh Ed25519 keypair.
func NewEphemeralSigner() (*Signer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate key: %w", err)
	}

	kid := make([]byte, 8)
	if _, err := rand.Read(kid); err != nil {
		return nil, fmt.Errorf("jwtx: generate kid: %w", err)
	}

	return &Signer{
		kid: base64.RawURLEncoding.EncodeToString(kid),
		key: priv,
		pub: pub,
	}, nil
}

// KID returns the key identifier stamped into token headers.
func (s *Signer) KID() string { return s.kid }

// Sign turns claims into a signed compact JWT string.
func (s *Signer) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = s.kid

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verifier returns a verifier for tokens produced by this signer, bound to
// the given issuer.
func (s *Signer) Verifier(issuer string) *Verifier {
	return &Verifier{
		keys:   map[string]ed25519.PublicKey{s.kid: s.pub},
		issuer: issuer,
	}
}
