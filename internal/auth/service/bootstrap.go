package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// BootstrapService seeds the first admin account at startup.
type BootstrapService struct {
	Store     store.Store
	Passwords *PasswordService

	Email     string
	Password  string
	FirstName string
	LastName  string
}

// EnsureAdmin creates the configured admin unless the email is already
// taken. Only one instance runs the seed at a time; an instance that loses
// the lock skips it, since the winner is doing the same work.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.Email == "" || s.Password == "" {
		return ErrAdminCredentialsNotFound
	}

	acquired, err := s.Store.WithBootstrapLock(ctx, func(ctx context.Context) error {
		hash, err := s.Passwords.Hash(s.Password)
		if err != nil {
			return err
		}

		created, err := s.Store.Users().CreateUserIfAbsent(ctx, domain.User{
			Email:        domain.NormalizeEmail(s.Email),
			PasswordHash: hash,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			Role:         domain.RoleAdmin,
		})
		if err != nil {
			return err
		}

		if created {
			l.Info("bootstrap admin created", slog.String("email", domain.NormalizeEmail(s.Email)))
		} else {
			l.Debug("bootstrap admin already present")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !acquired {
		l.Info("bootstrap lock held by another instance, skipping admin seed")
	}
	return nil
}
