package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAccessClaims(t *testing.T) {
	tenant := int64(7)

	tests := []struct {
		name       string
		role       Role
		tenantID   *int64
		wantTenant *string
	}{
		{"customer without tenant", RoleCustomer, nil, nil},
		{"manager with tenant", RoleManager, &tenant, ptr("7")},
		{"manager without tenant", RoleManager, nil, nil},
		{"admin never carries tenant", RoleAdmin, &tenant, nil},
		{"customer never carries tenant", RoleCustomer, &tenant, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BuildAccessClaims(42, tt.role, tt.tenantID)
			require.Equal(t, "42", c.Subject)
			require.Equal(t, tt.role, c.Role)
			require.Equal(t, tt.wantTenant, c.TenantID)
		})
	}
}

func TestBuildRefreshClaims(t *testing.T) {
	c := BuildRefreshClaims(42, 1001)
	require.Equal(t, RefreshClaims{Subject: "42", SessionID: "1001"}, c)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("1001")
	require.True(t, ok)
	require.EqualValues(t, 1001, id)

	for _, s := range []string{"", "abc", "0", "-3", "1.5"} {
		_, ok := ParseID(s)
		require.False(t, ok, s)
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "manager", "customer"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		require.True(t, r.Valid())
	}

	_, err := ParseRole("Admin")
	require.Error(t, err)
	require.False(t, Role("root").Valid())
	require.True(t, RoleManager.TenantScoped())
	require.False(t, RoleAdmin.TenantScoped())
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com "))
}

func ptr[T any](v T) *T { return &v }
