package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// AccessVerifier validates access tokens. Implementations perform no I/O.
type AccessVerifier interface {
	VerifyAccess(token string) (*AccessClaims, error)
}

// RefreshVerifier validates refresh token signatures and expiry. Liveness of
// the backing session is the caller's concern.
type RefreshVerifier interface {
	VerifyRefresh(token string) (*RefreshClaims, error)
}

// RS256Verifier checks access tokens against the RSA keys of a KeySet.
type RS256Verifier struct {
	keys   *KeySet
	issuer string
	parser *jwt.Parser
}

func NewVerifierRS256(keys *KeySet, issuer string) *RS256Verifier {
	return &RS256Verifier{
		keys:   keys,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *RS256Verifier) VerifyAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := v.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if err := validateIssuer(&claims.RegisteredClaims, v.issuer); err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrMissingClaim
	}
	return claims, nil
}

// HS256Verifier checks refresh tokens against the shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

func NewVerifierHS256(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, &SecretNotFoundError{Name: "refresh token secret"}
	}
	return &HS256Verifier{
		secret: secret,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// VerifyRefresh rejects tokens without a subject or session id.
func (v *HS256Verifier) VerifyRefresh(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	_, err := v.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if err := validateIssuer(&claims.RegisteredClaims, v.issuer); err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrMissingClaim
	}
	return claims, nil
}
