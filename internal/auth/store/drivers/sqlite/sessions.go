package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store/drivers/sqlite/gen"
)

type sessionsRepo struct {
	q *gen.Queries
}

func (r *sessionsRepo) CreateSession(ctx context.Context, userID int64, expiresAt time.Time) (domain.Session, error) {
	row, err := r.q.CreateSession(ctx, gen.CreateSessionParams{
		UserID:    userID,
		ExpiresAt: dbTime(expiresAt),
		Now:       dbTime(time.Now()),
	})
	if err != nil {
		return domain.Session{}, mapConstraint(err)
	}
	return mapSession(row), nil
}

func (r *sessionsRepo) GetSession(ctx context.Context, id int64) (domain.Session, error) {
	row, err := r.q.GetSession(ctx, id)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return mapSession(row), nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id int64) error {
	return r.q.DeleteSession(ctx, id)
}

func (r *sessionsRepo) ConsumeSession(ctx context.Context, id, userID int64) (bool, error) {
	n, err := r.q.ConsumeSession(ctx, gen.ConsumeSessionParams{ID: id, UserID: userID})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredSessions(ctx, dbTime(now))
}

func (r *sessionsRepo) CountUserSessions(ctx context.Context, userID int64) (int64, error) {
	return r.q.CountUserSessions(ctx, userID)
}
