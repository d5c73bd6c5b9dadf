package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store"
	"github.com/aussiebroadwan/identity/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	row, err := r.q.CreateUser(ctx, createUserParams(u))
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUserIfAbsent(ctx context.Context, u domain.User) (bool, error) {
	n, err := r.q.CreateUserIfAbsent(ctx, createUserParams(u))
	if err != nil {
		return false, mapConstraint(err)
	}
	return n > 0, nil
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	row, err := r.q.UpdateUser(ctx, gen.UpdateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		TenantID:     mapOptionalInt64(u.TenantID),
		Now:          dbTime(time.Now()),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, store.ErrNotFound
		}
		return domain.User{}, mapConstraint(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) ListUsers(ctx context.Context, p store.ListUsersParams) ([]domain.User, int64, error) {
	arg := gen.ListUsersParams{
		Role:          string(p.Role),
		SortCreatedAt: p.Sort == store.SortByCreatedAt,
		Desc:          p.Desc,
		Limit:         int64(p.Limit),
		Offset:        int64(p.Offset),
	}
	if p.Search != "" {
		arg.Pattern = "%" + likeEscaper.Replace(p.Search) + "%"
	}

	total, err := r.q.CountUsers(ctx, arg)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.ListUsers(ctx, arg)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row))
	}
	return out, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	n, err := r.q.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func createUserParams(u domain.User) gen.CreateUserParams {
	return gen.CreateUserParams{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		TenantID:     mapOptionalInt64(u.TenantID),
		Now:          dbTime(time.Now()),
	}
}
