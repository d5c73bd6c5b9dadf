package domain

import "time"

const (
	MaxTenantNameLen    = 100
	MaxTenantAddressLen = 255
)

type Tenant struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PublicTenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Tenant) Public() PublicTenant {
	return PublicTenant{ID: t.ID, Name: t.Name, Address: t.Address, CreatedAt: t.CreatedAt}
}
