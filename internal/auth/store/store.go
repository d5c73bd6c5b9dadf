package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories are reached through methods so a Tx hands
// out tx-scoped repositories and nested transactions cannot happen by
// accident.
type Store interface {
	Users() Users
	Sessions() Sessions
	Tenants() Tenants

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// WithBootstrapLock runs fn while holding a lock shared by every
	// instance using the same database. If another holder has it, fn is not
	// run and acquired is false.
	WithBootstrapLock(ctx context.Context, fn func(ctx context.Context) error) (acquired bool, err error)

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail expects an already normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts u and returns it with id and timestamps set.
	// A taken email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// CreateUserIfAbsent inserts u unless the email is taken; it never
	// fails on conflict.
	CreateUserIfAbsent(ctx context.Context, u domain.User) (created bool, err error)

	// UpdateUser overwrites the mutable columns of the user with u.ID: email,
	// password digest, names and tenant. Role and created_at are kept. A taken
	// email yields ErrAlreadyExists; an unknown id or tenant, ErrNotFound.
	UpdateUser(ctx context.Context, u domain.User) (domain.User, error)

	// ListUsers returns one page of users matching p, plus the number of
	// matches across all pages.
	ListUsers(ctx context.Context, p ListUsersParams) (users []domain.User, total int64, err error)

	// DeleteUser removes the user; sessions go with it through the FK cascade.
	DeleteUser(ctx context.Context, id int64) error
}

// UserSort is the column a user listing is ordered by. Ties on created_at
// are broken by id in the same direction.
type UserSort string

const (
	SortByID        UserSort = "id"
	SortByCreatedAt UserSort = "createdAt"
)

// ListUsersParams selects a page of users. Empty Role and Search match
// everyone. Search is a case-insensitive substring of email, first name or
// last name.
type ListUsersParams struct {
	Role   domain.Role
	Search string
	Sort   UserSort
	Desc   bool
	Limit  int
	Offset int
}

type Sessions interface {
	// CreateSession inserts a session row. Ids are never reused.
	CreateSession(ctx context.Context, userID int64, expiresAt time.Time) (domain.Session, error)

	GetSession(ctx context.Context, id int64) (domain.Session, error)

	// DeleteSession is idempotent: deleting an absent id is not an error.
	DeleteSession(ctx context.Context, id int64) error

	// ConsumeSession deletes the session only if it belongs to userID and
	// reports whether this call removed it. Of two concurrent callers at most
	// one sees true.
	ConsumeSession(ctx context.Context, id, userID int64) (bool, error)

	// DeleteExpiredSessions removes rows whose expiry is not after now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	CountUserSessions(ctx context.Context, userID int64) (int64, error)
}

type Tenants interface {
	CreateTenant(ctx context.Context, t domain.Tenant) (domain.Tenant, error)
	GetTenantByID(ctx context.Context, id int64) (domain.Tenant, error)
	ListTenants(ctx context.Context) ([]domain.Tenant, error)

	// UpdateTenant overwrites name and address of the tenant with t.ID.
	UpdateTenant(ctx context.Context, t domain.Tenant) (domain.Tenant, error)

	// DeleteTenant detaches its users (tenant_id set to NULL).
	DeleteTenant(ctx context.Context, id int64) error
}
