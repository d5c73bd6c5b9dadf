package domain

import "time"

// Session backs exactly one refresh token. Its ID is the token's jti.
type Session struct {
	ID        int64
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveAt reports whether the session can still be used at now.
func (s Session) ActiveAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
