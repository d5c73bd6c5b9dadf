package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// FindByEmail normalizes email before the lookup.
func (s *UserService) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) FindByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// CreateWithHash stores u, whose PasswordHash must already be set.
func (s *UserService) CreateWithHash(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = domain.NormalizeEmail(u.Email)
	if !u.Role.Valid() {
		return domain.User{}, ErrInvalidRole
	}

	return createUser(ctx, s.Store.Users(), u)
}

func createUser(ctx context.Context, users store.Users, u domain.User) (domain.User, error) {
	created, err := users.CreateUser(ctx, u)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, ErrUserAlreadyExists
	case errors.Is(err, store.ErrNotFound):
		// The only foreign key on users is the tenant.
		return domain.User{}, ErrTenantNotFound
	}
	return created, err
}
