package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestTenantManagerLifecycle walks an admin through creating a tenant and a
// manager, then checks what the manager can see.
func TestTenantManagerLifecycle(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()
	ctx := t.Context()

	admin := loginAdmin(t, baseURL)

	tenant, err := admin.CreateTenant(ctx, "Acme", "1 Main St")
	require.NoError(t, err)
	require.Positive(t, tenant.ID)

	manager, err := admin.CreateUser(ctx, authsdk.CreateUserRequest{
		FirstName: "Mia",
		LastName:  "Manager",
		Email:     "mia@example.com",
		Password:  userPassword,
		Role:      "manager",
		TenantID:  &tenant.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "manager", manager.Role)
	require.NotNil(t, manager.TenantID)
	require.Equal(t, tenant.ID, *manager.TenantID)

	mia := newClient(t, baseURL)
	_, err = mia.Login(ctx, "mia@example.com", userPassword)
	require.NoError(t, err)

	self, err := mia.Self(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, self.Tenant)
	require.Equal(t, "Acme", self.Tenant.Name)

	got, err := mia.GetTenant(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, "1 Main St", got.Address)

	// Deleting the tenant detaches the manager.
	require.NoError(t, admin.DeleteTenant(ctx, tenant.ID))
	user, err := admin.GetUser(ctx, manager.ID)
	require.NoError(t, err)
	require.Nil(t, user.TenantID)

	// Deleting the user ends their sessions.
	require.NoError(t, admin.DeleteUser(ctx, manager.ID))
	_, err = mia.Refresh(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "refresh after the account was deleted")
}

// TestCreateManagerForMissingTenant verifies the tenant must exist.
func TestCreateManagerForMissingTenant(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	missing := int64(424242)
	_, err := loginAdmin(t, baseURL).CreateUser(t.Context(), authsdk.CreateUserRequest{
		FirstName: "Mia",
		LastName:  "Manager",
		Email:     "mia@example.com",
		Password:  userPassword,
		Role:      "manager",
		TenantID:  &missing,
	})
	apiErr := assertStatus(t, err, http.StatusNotFound, "manager for a missing tenant")
	require.Equal(t, "tenant_not_found", apiErr.Type())
}
