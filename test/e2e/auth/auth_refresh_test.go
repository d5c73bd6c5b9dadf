package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func registerRequest(email string) authsdk.RegisterRequest {
	return authsdk.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  userPassword,
	}
}

// TestRegisterLoginRefresh tests the complete flow:
// 1. Register a customer
// 2. Login again with the same credentials
// 3. Refresh the tokens
// 4. Verify rotation and that the old refresh token is dead
func TestRegisterLoginRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	_, userID := registerCustomer(t, baseURL, "customer@example.com")

	client := newClient(t, baseURL)
	id, err := client.Login(t.Context(), "Customer@Example.com", userPassword)
	require.NoError(t, err)
	require.Equal(t, userID, id)

	oldAccess, oldRefresh := client.Tokens()
	require.NotEmpty(t, oldAccess)
	require.NotEmpty(t, oldRefresh)

	id, err = client.Refresh(t.Context())
	require.NoError(t, err)
	require.Equal(t, userID, id)

	newAccess, newRefresh := client.Tokens()
	require.NotEqual(t, oldRefresh, newRefresh, "Refresh token should be rotated")
	require.NotEmpty(t, newAccess)

	self, err := client.Self(t.Context(), false)
	require.NoError(t, err)
	require.Equal(t, "customer", self.Role)

	replay := newClient(t, baseURL)
	replay.SetTokens("", oldRefresh)
	_, err = replay.Refresh(t.Context())
	assertStatus(t, err, http.StatusUnauthorized, "replayed refresh token")
}

// TestLogout verifies logout clears cookies and revokes the session, and
// that logging out again still succeeds.
func TestLogout(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client, _ := registerCustomer(t, baseURL, "leaver@example.com")
	access, refresh := client.Tokens()

	require.NoError(t, client.Logout(t.Context()))
	a, r := client.Tokens()
	require.Empty(t, a)
	require.Empty(t, r)

	client.SetTokens(access, refresh)
	require.NoError(t, client.Logout(t.Context()), "second logout should succeed")

	_, err := client.Refresh(t.Context())
	assertStatus(t, err, http.StatusUnauthorized, "refresh after logout")
}
