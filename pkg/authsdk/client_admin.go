package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateTenant requires an admin session.
func (c *SDKClient) CreateTenant(ctx context.Context, name, address string) (*Tenant, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/tenants", CreateTenantRequest{Name: name, Address: address})
	if err != nil {
		return nil, err
	}

	var t Tenant
	if err := decodeJSON(resp, &t, http.StatusCreated); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *SDKClient) GetTenant(ctx context.Context, id int64) (*Tenant, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/tenants/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var t Tenant
	if err := decodeJSON(resp, &t, http.StatusOK); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *SDKClient) ListTenants(ctx context.Context) ([]Tenant, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/tenants", nil)
	if err != nil {
		return nil, err
	}

	var out []Tenant
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SDKClient) UpdateTenant(ctx context.Context, id int64, req UpdateTenantRequest) (*Tenant, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/tenants/%d", id), req)
	if err != nil {
		return nil, err
	}

	var t Tenant
	if err := decodeJSON(resp, &t, http.StatusOK); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *SDKClient) DeleteTenant(ctx context.Context, id int64) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/tenants/%d", id), nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// CreateUser creates an admin or manager account.
func (c *SDKClient) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/users", req)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusCreated); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *SDKClient) GetUser(ctx context.Context, id int64) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *SDKClient) DeleteUser(ctx context.Context, id int64) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// ListUsers fetches one page of users.
func (c *SDKClient) ListUsers(ctx context.Context, p ListUsersParams) (*UserList, error) {
	q := url.Values{}
	if p.Page != 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit != 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	for k, v := range map[string]string{"sort": p.Sort, "order": p.Order, "role": p.Role, "q": p.Q} {
		if v != "" {
			q.Set(k, v)
		}
	}

	path := "/admin/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out UserList
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d", id), req)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}
