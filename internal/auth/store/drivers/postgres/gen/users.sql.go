package gen

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const userColumns = `id, email, password_hash, first_name, last_name, role, tenant_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.TenantID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	TenantID     sql.NullInt64
	Now          time.Time
}

const createUser = `INSERT INTO users (email, password_hash, first_name, last_name, role, tenant_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, createUser,
		arg.Email,
		arg.PasswordHash,
		arg.FirstName,
		arg.LastName,
		arg.Role,
		arg.TenantID,
		arg.Now,
		arg.Now,
	))
}

const createUserIfAbsent = `INSERT INTO users (email, password_hash, first_name, last_name, role, tenant_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (email) DO NOTHING`

func (q *Queries) CreateUserIfAbsent(ctx context.Context, arg CreateUserParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createUserIfAbsent,
		arg.Email,
		arg.PasswordHash,
		arg.FirstName,
		arg.LastName,
		arg.Role,
		arg.TenantID,
		arg.Now,
		arg.Now,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteUser = `DELETE FROM users WHERE id = $1`

func (q *Queries) DeleteUser(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type UpdateUserParams struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	TenantID     sql.NullInt64
	Now          time.Time
}

const updateUser = `UPDATE users
SET email = $1, password_hash = $2, first_name = $3, last_name = $4, tenant_id = $5, updated_at = $6
WHERE id = $7
RETURNING ` + userColumns

func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, updateUser,
		arg.Email,
		arg.PasswordHash,
		arg.FirstName,
		arg.LastName,
		arg.TenantID,
		arg.Now,
		arg.ID,
	))
}

// ListUsersParams filters by Role and Pattern when they are non-empty.
// Pattern is a LIKE pattern with backslash escapes.
type ListUsersParams struct {
	Role          string
	Pattern       string
	SortCreatedAt bool
	Desc          bool
	Limit         int64
	Offset        int64
}

const listUsersWhere = `
WHERE ($1 = '' OR role = $1)
  AND ($2 = '' OR email ILIKE $2 OR first_name ILIKE $2 OR last_name ILIKE $2)`

const countUsers = `SELECT COUNT(*) FROM users` + listUsersWhere

func (q *Queries) CountUsers(ctx context.Context, arg ListUsersParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers, arg.Role, arg.Pattern).Scan(&n)
	return n, err
}

func listUsersOrder(arg ListUsersParams) string {
	dir := "ASC"
	if arg.Desc {
		dir = "DESC"
	}
	if arg.SortCreatedAt {
		return fmt.Sprintf("ORDER BY created_at %s, id %s", dir, dir)
	}
	return "ORDER BY id " + dir
}

func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users` + listUsersWhere + "\n" + listUsersOrder(arg) + "\nLIMIT $3 OFFSET $4"
	rows, err := q.db.QueryContext(ctx, query, arg.Role, arg.Pattern, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}
