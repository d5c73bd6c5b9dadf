package domain

import "fmt"

// Role is the closed set of user roles. Roles are flat: no role implies
// another, and every protected operation lists the roles it admits.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

// ParseRole accepts only the three known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// TenantScoped reports whether users of this role belong to a tenant.
func (r Role) TenantScoped() bool { return r == RoleManager }
