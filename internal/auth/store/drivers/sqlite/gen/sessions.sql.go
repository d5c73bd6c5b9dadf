package gen

import (
	"context"
	"time"
)

const sessionColumns = `id, user_id, expires_at, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

type CreateSessionParams struct {
	UserID    int64
	ExpiresAt time.Time
	Now       time.Time
}

const createSession = `INSERT INTO sessions (user_id, expires_at, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING ` + sessionColumns

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	return scanSession(q.db.QueryRowContext(ctx, createSession, arg.UserID, arg.ExpiresAt, arg.Now, arg.Now))
}

const getSession = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`

func (q *Queries) GetSession(ctx context.Context, id int64) (Session, error) {
	return scanSession(q.db.QueryRowContext(ctx, getSession, id))
}

const deleteSession = `DELETE FROM sessions WHERE id = ?`

func (q *Queries) DeleteSession(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSession, id)
	return err
}

const consumeSession = `DELETE FROM sessions WHERE id = ? AND user_id = ?`

type ConsumeSessionParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) ConsumeSession(ctx context.Context, arg ConsumeSessionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, consumeSession, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= ?`

func (q *Queries) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredSessions, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countUserSessions = `SELECT COUNT(*) FROM sessions WHERE user_id = ?`

func (q *Queries) CountUserSessions(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUserSessions, userID).Scan(&n)
	return n, err
}
