package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBootstrapAdminCanLogin verifies the admin from ADMIN_EMAIL and
// ADMIN_PASSWORD exists after startup.
func TestBootstrapAdminCanLogin(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	admin := loginAdmin(t, baseURL)

	self, err := admin.Self(t.Context(), true)
	require.NoError(t, err)
	require.Equal(t, adminEmail, self.Email)
	require.Equal(t, "admin", self.Role)
	require.Equal(t, "System", self.FirstName)
	require.Nil(t, self.TenantID)
}

// TestBootstrapAdminEmailIsTaken verifies the bootstrap account cannot be
// claimed through registration.
func TestBootstrapAdminEmailIsTaken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	_, err := newClient(t, baseURL).Register(t.Context(), registerRequest(adminEmail))
	apiErr := assertStatus(t, err, 400, "registering the admin email")
	require.Equal(t, "user_already_exists", apiErr.Type())
}
