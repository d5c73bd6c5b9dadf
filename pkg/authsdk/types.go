package authsdk

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IDResponse is returned by register, login and refresh. The tokens
// themselves travel as cookies.
type IDResponse struct {
	ID int64 `json:"id"`
}

// ============================================================================
// User and Tenant Types
// ============================================================================

// User is the public view of an account.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TenantID  *int64    `json:"tenantId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Tenant    *Tenant   `json:"tenant,omitempty"`
}

type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateTenantRequest is the body of POST /tenants.
type CreateTenantRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CreateUserRequest is the body of POST /admin/users. Role is "admin" or
// "manager"; managers need a TenantID.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	TenantID  *int64 `json:"tenantId,omitempty"`
}

// UpdateTenantRequest is the body of PATCH /tenants/{id}. Nil fields are
// left unchanged.
type UpdateTenantRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

// UpdateUserRequest is the body of PATCH /admin/users/{id}. Nil fields are
// left unchanged. Role cannot be changed.
type UpdateUserRequest struct {
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Password  *string    `json:"password,omitempty"`
	TenantID  NullableID `json:"tenantId,omitzero" swaggertype:"integer"`
}

// NullableID tells an absent id apart from an explicit null. A set ID with
// a nil Value marshals as null.
type NullableID struct {
	Set   bool
	Value *int64
}

// SetID returns a NullableID carrying id.
func SetID(id int64) NullableID { return NullableID{Set: true, Value: &id} }

// ClearID returns a NullableID that marshals as null.
func ClearID() NullableID { return NullableID{Set: true} }

func (n NullableID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

func (n *NullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// ListUsersParams are the query parameters of GET /admin/users. Zero values
// are left out and take the server defaults.
type ListUsersParams struct {
	Page  int
	Limit int
	Sort  string // id or createdAt
	Order string // asc or desc
	Role  string
	Q     string
}

// UserList is one page of GET /admin/users.
type UserList struct {
	Rows       []User `json:"rows"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Sort       string `json:"sort"`
	Order      string `json:"order"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"totalPages"`
}

// ============================================================================
// System Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency in /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the JSON Web Key Set published for access token
// verification.
type JWKSResponse jwtx.JWKS
