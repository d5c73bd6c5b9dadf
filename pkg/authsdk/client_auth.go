package authsdk

import (
	"context"
	"net/http"
)

// Register creates a customer account and stores the issued cookies.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return 0, err
	}

	var out IDResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Login signs in and stores the issued cookies.
func (c *SDKClient) Login(ctx context.Context, email, password string) (int64, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return 0, err
	}

	var out IDResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Self returns the signed in user; expandTenant asks for the tenant too.
func (c *SDKClient) Self(ctx context.Context, expandTenant bool) (*User, error) {
	path := "/auth/self"
	if expandTenant {
		path += "?expand=tenant"
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// Refresh rotates the refresh token held in the jar. The old one is dead
// afterwards.
func (c *SDKClient) Refresh(ctx context.Context) (int64, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/refresh", nil)
	if err != nil {
		return 0, err
	}

	var out IDResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Logout revokes the current session; the server clears both cookies.
func (c *SDKClient) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}
