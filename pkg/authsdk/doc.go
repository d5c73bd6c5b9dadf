/*
Package authsdk is a Go client for the identity service and the home of the
request, response and error types the service speaks.

# Client

The client keeps tokens in a cookie jar, the same way a browser does:

	client, err := authsdk.NewSDKClient("https://auth.example.com")

	// Create an account (role customer) or sign in.
	id, err := client.Register(ctx, authsdk.RegisterRequest{...})
	id, err = client.Login(ctx, "a@b.com", "Secret123!")

	// Authenticated calls use the stored accessToken cookie.
	me, err := client.Self(ctx, false)

	// Rotate the refresh token. The previous one stops working.
	_, err = client.Refresh(ctx)

	// Revoke the session and drop the cookies.
	err = client.Logout(ctx)

Admin sessions can also manage tenants and privileged users:

	tenant, err := client.CreateTenant(ctx, "Acme", "1 Road St")
	mgr, err := client.CreateUser(ctx, authsdk.CreateUserRequest{Role: "manager", TenantID: &tenant.ID, ...})

# Errors

Every non-2xx response is returned as *APIError, which carries the status
code and the {"errors":[{"type","msg"}]} envelope. Predefined values compare
with errors.Is on status and type:

	if errors.Is(err, authsdk.ErrInvalidCredentials) {
		// wrong email or password
	}

# Verifying access tokens elsewhere

Access tokens are RS256 JWTs. Other services fetch the public keys with
GetJWKS and verify locally; refresh tokens can only be checked by the
identity service itself.
*/
package authsdk
