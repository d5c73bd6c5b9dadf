package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// TokenService mints access and refresh tokens and owns the session rows
// that make refresh tokens revocable.
type TokenService struct {
	AccessSigner  *jwtx.RS256Signer
	RefreshSigner *jwtx.HS256Signer
	Store         store.Store
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) issuer() string {
	if s.Issuer == "" {
		return jwtx.DefaultIssuer
	}
	return s.Issuer
}

// AccessTokenTTL is the lifetime stamped on access tokens. A non-positive
// AccessTTL falls back to the default.
func (s *TokenService) AccessTokenTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

// RefreshTokenTTL is the lifetime of refresh tokens and their sessions.
func (s *TokenService) RefreshTokenTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.RefreshTTL
}

// IssueAccessToken signs claims with the RS256 key.
func (s *TokenService) IssueAccessToken(claims domain.AccessClaims) (string, error) {
	if s.AccessSigner == nil {
		return "", &jwtx.SecretNotFoundError{Name: "access token private key"}
	}

	var tenantID string
	if claims.TenantID != nil {
		tenantID = *claims.TenantID
	}

	c := jwtx.NewAccessClaims(claims.Subject, string(claims.Role), tenantID, s.AccessTokenTTL(), s.issuer(), s.now())
	return s.AccessSigner.Sign(c)
}

// IssueRefreshToken persists a new session for userID and then signs a token
// naming it. The row is committed before the token exists, so a client can
// never hold a refresh token whose session is not yet visible.
func (s *TokenService) IssueRefreshToken(ctx context.Context, userID int64) (string, error) {
	if s.RefreshSigner == nil {
		return "", &jwtx.SecretNotFoundError{Name: "refresh token secret"}
	}

	now := s.now()
	ttl := s.RefreshTokenTTL()

	sess, err := s.Store.Sessions().CreateSession(ctx, userID, now.Add(ttl))
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	rc := domain.BuildRefreshClaims(userID, sess.ID)
	return s.RefreshSigner.Sign(jwtx.NewRefreshClaims(rc.Subject, rc.SessionID, ttl, s.issuer(), now))
}

// IsSessionActive reports whether the session exists and has not expired.
// A missing row, an expired row and a row owned by someone other than userID
// all read as inactive; only store failures are returned as errors.
func (s *TokenService) IsSessionActive(ctx context.Context, sessionID int64, userID *int64) (bool, error) {
	sess, err := s.Store.Sessions().GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if userID != nil && sess.UserID != *userID {
		return false, nil
	}
	return sess.ActiveAt(s.now()), nil
}

// IsRefreshSessionActive checks liveness for verified refresh claims.
func (s *TokenService) IsRefreshSessionActive(ctx context.Context, claims *jwtx.RefreshClaims) (bool, error) {
	if claims == nil {
		return false, nil
	}
	sessionID, ok := domain.ParseID(claims.SessionID())
	if !ok {
		return false, nil
	}
	userID, ok := domain.ParseID(claims.Subject)
	if !ok {
		return false, nil
	}
	return s.IsSessionActive(ctx, sessionID, &userID)
}

// RevokeSession deletes the session row. Revoking an unknown id is a no-op.
func (s *TokenService) RevokeSession(ctx context.Context, sessionID int64) error {
	return s.Store.Sessions().DeleteSession(ctx, sessionID)
}

// ConsumeSession deletes the session for a refresh rotation and reports
// whether this caller was the one that removed it.
func (s *TokenService) ConsumeSession(ctx context.Context, userID, sessionID int64) (bool, error) {
	return s.Store.Sessions().ConsumeSession(ctx, sessionID, userID)
}
