package jwtx

import (
	"crypto/rsa"
	"errors"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Signer turns claims into a compact JWS.
type Signer interface {
	Alg() string
	Sign(claims jwt.Claims) (string, error)
}

// RS256Signer signs access tokens with an RSA private key and stamps the
// "kid" header so verifiers can pick the key from a JWKS.
type RS256Signer struct {
	kid string
	key *rsa.PrivateKey
}

// NewSignerRS256 loads a PEM encoded RSA private key. Empty input is a
// missing secret, not a parse failure.
func NewSignerRS256(kid string, pemKey []byte) (*RS256Signer, error) {
	if len(pemKey) == 0 {
		return nil, &SecretNotFoundError{Name: "access token private key"}
	}
	key, err := cryptox.ParseRSAPrivateKey(pemKey)
	if err != nil {
		return nil, err
	}
	return NewRS256Signer(kid, key)
}

// NewRS256Signer wraps an already parsed key.
func NewRS256Signer(kid string, key *rsa.PrivateKey) (*RS256Signer, error) {
	if key == nil {
		return nil, &SecretNotFoundError{Name: "access token private key"}
	}
	if kid == "" {
		return nil, errors.New("jwtx: kid is required")
	}
	return &RS256Signer{kid: kid, key: key}, nil
}

func (s *RS256Signer) Alg() string { return jwt.SigningMethodRS256.Alg() }
func (s *RS256Signer) KID() string { return s.kid }

func (s *RS256Signer) Sign(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK returns the verification key for publication in a JWKS.
func (s *RS256Signer) PublicJWK() JWK {
	return NewRSAJWK(s.kid, "sig", s.Alg(), &s.key.PublicKey)
}

// HS256Signer signs refresh tokens with a secret only this service knows.
type HS256Signer struct {
	secret []byte
}

func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, &SecretNotFoundError{Name: "refresh token secret"}
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

func (s *HS256Signer) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
