package domain

import "strconv"

// AccessClaims is the payload of an access token before signing.
type AccessClaims struct {
	Subject  string
	Role     Role
	TenantID *string
}

// RefreshClaims is the payload of a refresh token before signing.
type RefreshClaims struct {
	Subject   string
	SessionID string
}

// BuildAccessClaims derives access claims for a user. A tenant is carried
// only by tenant scoped roles, and only when one is assigned.
func BuildAccessClaims(userID int64, role Role, tenantID *int64) AccessClaims {
	c := AccessClaims{
		Subject: strconv.FormatInt(userID, 10),
		Role:    role,
	}
	if role.TenantScoped() && tenantID != nil {
		t := strconv.FormatInt(*tenantID, 10)
		c.TenantID = &t
	}
	return c
}

func BuildRefreshClaims(userID, sessionID int64) RefreshClaims {
	return RefreshClaims{
		Subject:   strconv.FormatInt(userID, 10),
		SessionID: strconv.FormatInt(sessionID, 10),
	}
}

// ParseID parses a numeric id carried in a token claim.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
