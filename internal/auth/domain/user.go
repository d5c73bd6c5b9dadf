package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           int64
	Email        string // always lowercase
	PasswordHash string // argon2id PHC string
	FirstName    string
	LastName     string
	Role         Role
	TenantID     *int64 // set only for tenant scoped roles
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the only user representation that leaves the service.
type PublicUser struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Role      Role          `json:"role"`
	TenantID  *int64        `json:"tenantId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	Tenant    *PublicTenant `json:"tenant,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		TenantID:  u.TenantID,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail is applied on every write and every lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
