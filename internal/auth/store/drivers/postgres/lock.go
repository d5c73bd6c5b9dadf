package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Advisory lock key for the admin bootstrap, shared by every instance.
const (
	lockClassBootstrap = 41717
	lockObjBootstrap   = 1
)

// WithBootstrapLock holds a session level advisory lock on a dedicated
// connection while fn runs. Session locks are tied to the connection, so the
// lock and unlock must go through the same *sql.Conn.
func (s *Store) WithBootstrapLock(ctx context.Context, fn func(ctx context.Context) error) (bool, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	var acquired bool
	if err := conn.QueryRowContext(ctx,
		`SELECT pg_try_advisory_lock($1, $2)`, lockClassBootstrap, lockObjBootstrap,
	).Scan(&acquired); err != nil {
		return false, fmt.Errorf("postgres: acquire bootstrap lock: %w", err)
	}
	if !acquired {
		return false, nil
	}

	defer func() {
		// Use a fresh context so a cancelled caller still releases the lock.
		_, _ = conn.ExecContext(context.Background(),
			`SELECT pg_advisory_unlock($1, $2)`, lockClassBootstrap, lockObjBootstrap)
	}()

	return true, fn(ctx)
}

func (t *txStore) WithBootstrapLock(ctx context.Context, fn func(ctx context.Context) error) (bool, error) {
	return false, sql.ErrTxDone
}
