package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// AuthService runs the credential lifecycle: register, login, refresh and
// logout, plus reading back the caller's own profile.
type AuthService struct {
	Users     *UserService
	Tenants   *TenantService
	Tokens    *TokenService
	Passwords *PasswordService
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.AuthResult, error) {
	hash, err := s.Passwords.Hash(in.Password)
	if err != nil {
		return domain.AuthResult{}, err
	}

	user, err := s.Users.CreateWithHash(ctx, domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return domain.AuthResult{}, err
	}

	tokens, err := s.issuePair(ctx, user)
	if err != nil {
		return domain.AuthResult{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.Int64("user_id", user.ID))
	return domain.AuthResult{User: user.Public(), Tokens: tokens}, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike. Both paths run one password verification.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.Passwords.VerifyDummy(password)
			return domain.AuthResult{}, ErrInvalidCredentials
		}
		return domain.AuthResult{}, err
	}

	if !s.Passwords.Verify(password, user.PasswordHash) {
		return domain.AuthResult{}, ErrInvalidCredentials
	}

	tokens, err := s.issuePair(ctx, user)
	if err != nil {
		return domain.AuthResult{}, err
	}
	return domain.AuthResult{User: user.Public(), Tokens: tokens}, nil
}

// WhoAmI loads the caller. With expandTenant, managers and admins get their
// tenant attached when they have one.
func (s *AuthService) WhoAmI(ctx context.Context, userID int64, expandTenant bool) (domain.PublicUser, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}

	pub := user.Public()
	if !expandTenant || user.Role == domain.RoleCustomer || user.TenantID == nil || s.Tenants == nil {
		return pub, nil
	}

	tenant, err := s.Tenants.Get(ctx, *user.TenantID)
	switch {
	case err == nil:
		pub.Tenant = &tenant
	case errors.Is(err, ErrTenantNotFound):
		// Tenant removed under us; the user row is detached shortly after.
	default:
		return domain.PublicUser{}, err
	}
	return pub, nil
}

// Refresh rotates a refresh token. The presented session is consumed before
// anything else; a caller that loses the race for it gets ErrSessionRevoked
// and no new pair.
func (s *AuthService) Refresh(ctx context.Context, userID, sessionID int64) (domain.TokenPair, error) {
	consumed, err := s.Tokens.ConsumeSession(ctx, userID, sessionID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !consumed {
		return domain.TokenPair{}, ErrSessionRevoked
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return s.issuePair(ctx, user)
}

// Logout revokes the session. It never fails: the client clears its own
// cookies regardless, so revocation errors are only logged.
func (s *AuthService) Logout(ctx context.Context, sessionID int64) {
	if err := s.Tokens.RevokeSession(ctx, sessionID); err != nil {
		slogx.FromContext(ctx).Warn("failed to revoke session on logout",
			slog.Int64("session_id", sessionID),
			slog.Any("error", err),
		)
	}
}

func (s *AuthService) issuePair(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	claims := domain.BuildAccessClaims(user.ID, user.Role, user.TenantID)

	access, err := s.Tokens.IssueAccessToken(claims)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Tokens.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
