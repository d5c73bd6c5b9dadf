package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// AdminUserService is the administrative side of user management: creating
// privileged accounts and removing users.
type AdminUserService struct {
	Store     store.Store
	Passwords *PasswordService
}

type NewUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (s *AdminUserService) CreateAdmin(ctx context.Context, in NewUserInput) (domain.PublicUser, error) {
	hash, err := s.Passwords.Hash(in.Password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	u, err := createUser(ctx, s.Store.Users(), domain.User{
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return domain.PublicUser{}, err
	}

	slogx.FromContext(ctx).Info("admin created", slog.Int64("user_id", u.ID))
	return u.Public(), nil
}

// CreateManager creates a manager bound to tenantID, which must exist.
func (s *AdminUserService) CreateManager(ctx context.Context, in NewUserInput, tenantID int64) (domain.PublicUser, error) {
	hash, err := s.Passwords.Hash(in.Password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	var u domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Tenants().GetTenantByID(ctx, tenantID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTenantNotFound
			}
			return err
		}

		created, err := createUser(ctx, tx.Users(), domain.User{
			Email:        domain.NormalizeEmail(in.Email),
			PasswordHash: hash,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Role:         domain.RoleManager,
			TenantID:     &tenantID,
		})
		if err != nil {
			return err
		}
		u = created
		return nil
	})
	if err != nil {
		return domain.PublicUser{}, err
	}

	slogx.FromContext(ctx).Info("manager created",
		slog.Int64("user_id", u.ID),
		slog.Int64("tenant_id", tenantID),
	)
	return u.Public(), nil
}

func (s *AdminUserService) Get(ctx context.Context, id int64) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrUserNotFound
		}
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
	MaxSearchLen     = 200
)

// ListUsersInput is a user listing request. Zero values take the defaults:
// page 1, DefaultListLimit rows, newest id first.
type ListUsersInput struct {
	Page   int
	Limit  int
	Sort   string
	Order  string
	Role   string
	Search string
}

type UserPage struct {
	Users      []domain.PublicUser
	Page       int
	Limit      int
	Sort       string
	Order      string
	Total      int64
	TotalPages int
}

// List returns one page of users. A page past the end is empty but still
// reports the real totals.
func (s *AdminUserService) List(ctx context.Context, in ListUsersInput) (UserPage, error) {
	page, limit := in.Page, in.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if page < 1 {
		return UserPage{}, fmt.Errorf("%w: page must be an integer >= 1", ErrInvalidInput)
	}
	if limit < 1 || limit > MaxListLimit {
		return UserPage{}, fmt.Errorf("%w: limit must be an integer between 1 and %d", ErrInvalidInput, MaxListLimit)
	}

	sort := store.UserSort(in.Sort)
	switch {
	case sort == "":
		sort = store.SortByID
	case strings.EqualFold(in.Sort, string(store.SortByID)):
		sort = store.SortByID
	case strings.EqualFold(in.Sort, string(store.SortByCreatedAt)):
		sort = store.SortByCreatedAt
	default:
		return UserPage{}, fmt.Errorf("%w: sort must be one of: id, createdAt", ErrInvalidInput)
	}

	order := strings.ToLower(in.Order)
	switch order {
	case "":
		order = "desc"
	case "asc", "desc":
	default:
		return UserPage{}, fmt.Errorf("%w: order must be one of: asc, desc", ErrInvalidInput)
	}

	var role domain.Role
	if in.Role != "" {
		r, err := domain.ParseRole(strings.ToLower(in.Role))
		if err != nil {
			return UserPage{}, fmt.Errorf("%w: role must be one of: admin, manager, customer", ErrInvalidInput)
		}
		role = r
	}

	search := normalizeSearch(in.Search)
	if utf8.RuneCountInString(search) > MaxSearchLen {
		return UserPage{}, fmt.Errorf("%w: q must be a string up to %d characters", ErrInvalidInput, MaxSearchLen)
	}

	users, total, err := s.Store.Users().ListUsers(ctx, store.ListUsersParams{
		Role:   role,
		Search: search,
		Sort:   sort,
		Desc:   order == "desc",
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return UserPage{}, err
	}

	out := UserPage{
		Users:      make([]domain.PublicUser, 0, len(users)),
		Page:       page,
		Limit:      limit,
		Sort:       string(sort),
		Order:      order,
		Total:      total,
		TotalPages: max(1, int(math.Ceil(float64(total)/float64(limit)))),
	}
	for _, u := range users {
		out.Users = append(out.Users, u.Public())
	}
	return out, nil
}

// normalizeSearch drops control characters and collapses whitespace runs.
func normalizeSearch(q string) string {
	q = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, q)
	return strings.Join(strings.Fields(q), " ")
}

// UpdateUserInput carries the fields to change; nil means unchanged. Role is
// not updatable. TenantSet with a nil TenantID detaches the user.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	TenantSet bool
	TenantID  *int64
}

func (in UpdateUserInput) empty() bool {
	return in.FirstName == nil && in.LastName == nil && in.Email == nil && in.Password == nil && !in.TenantSet
}

// Update applies in to the user. An email already used by someone else
// fails with ErrUserAlreadyExists and a missing tenant with
// ErrTenantNotFound; nothing is written in either case.
func (s *AdminUserService) Update(ctx context.Context, id int64, in UpdateUserInput) (domain.PublicUser, error) {
	if in.empty() {
		return domain.PublicUser{}, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	var hash string
	if in.Password != nil {
		h, err := s.Passwords.Hash(*in.Password)
		if err != nil {
			return domain.PublicUser{}, err
		}
		hash = h
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if in.Email != nil {
			u.Email = domain.NormalizeEmail(*in.Email)
		}
		if in.FirstName != nil {
			u.FirstName = strings.TrimSpace(*in.FirstName)
		}
		if in.LastName != nil {
			u.LastName = strings.TrimSpace(*in.LastName)
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		if in.TenantSet {
			if in.TenantID != nil {
				if !u.Role.TenantScoped() {
					return fmt.Errorf("%w: only managers belong to a tenant", ErrInvalidInput)
				}
				if _, err := tx.Tenants().GetTenantByID(ctx, *in.TenantID); err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return ErrTenantNotFound
					}
					return err
				}
			}
			u.TenantID = in.TenantID
		}

		saved, err := tx.Users().UpdateUser(ctx, u)
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return ErrUserAlreadyExists
		case errors.Is(err, store.ErrNotFound):
			return ErrTenantNotFound
		case err != nil:
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return domain.PublicUser{}, err
	}

	slogx.FromContext(ctx).Info("user updated",
		slog.Int64("user_id", id),
		slog.Bool("password_changed", in.Password != nil),
	)
	return updated.Public(), nil
}

// Delete removes the user and, through the foreign key, every session.
func (s *AdminUserService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	slogx.FromContext(ctx).Info("user deleted", slog.Int64("user_id", id))
	return nil
}
