package jwtx

import (
	"time"

	"github.com/aussiebroadwan/identity/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultIssuer is the "iss" of every token minted by the service.
	DefaultIssuer = "auth-service"

	DefaultAccessTokenTTL  = time.Hour
	DefaultRefreshTokenTTL = 365 * 24 * time.Hour
)

// AccessClaims are carried by RS256 access tokens and verified by any
// service holding the public key.
type AccessClaims struct {
	jwt.RegisteredClaims

	Role string `json:"role"`

	// TenantID is only present for tenant scoped users.
	TenantID string `json:"tenantId,omitempty"`
}

// RefreshClaims are carried by HS256 refresh tokens. The jti is the id of
// the session row backing the token.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// SessionID returns the jti claim.
func (c *RefreshClaims) SessionID() string { return c.ID }

// NewAccessClaims builds access claims expiring ttl after now.
func NewAccessClaims(subject, role, tenantID string, ttl time.Duration, issuer string, now time.Time) AccessClaims {
	return AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now).String(),
		},
		Role:     role,
		TenantID: tenantID,
	}
}

// NewRefreshClaims builds refresh claims bound to sessionID.
func NewRefreshClaims(subject, sessionID string, ttl time.Duration, issuer string, now time.Time) RefreshClaims {
	return RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        sessionID,
		},
	}
}

// validateIssuer checks the iss claim; an empty expectation disables the check.
func validateIssuer(rc *jwt.RegisteredClaims, expected string) error {
	if expected != "" && rc.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
