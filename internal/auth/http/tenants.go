package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
)

// TenantsHandler handles tenant management endpoints.
type TenantsHandler struct {
	TenantService *service.TenantService
}

// HandleCreate handles POST /tenants
//
//	@Summary		Create tenant
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			request	body		authsdk.CreateTenantRequest	true	"Tenant"
//	@Success		201		{object}	authsdk.Tenant
//	@Failure		400		{object}	authsdk.APIError
//	@Failure		401		{object}	authsdk.APIError
//	@Failure		403		{object}	authsdk.APIError
//	@Router			/tenants [post]
func (h *TenantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateTenantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.TenantService.Create(r.Context(), req.Name, req.Address)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, t)
}

// HandleList handles GET /tenants
//
//	@Summary		List tenants
//	@Tags			Tenants
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Success		200	{array}		authsdk.Tenant
//	@Failure		401	{object}	authsdk.APIError
//	@Failure		403	{object}	authsdk.APIError
//	@Router			/tenants [get]
func (h *TenantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.TenantService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tenants)
}

// HandleGet handles GET /tenants/{id}. Managers may only read their own
// tenant.
//
//	@Summary		Get tenant
//	@Tags			Tenants
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Tenant id"
//	@Success		200	{object}	authsdk.Tenant
//	@Failure		401	{object}	authsdk.APIError
//	@Failure		403	{object}	authsdk.APIError
//	@Failure		404	{object}	authsdk.APIError
//	@Router			/tenants/{id} [get]
func (h *TenantsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		authsdk.ErrTenantNotFound.WriteError(w)
		return
	}

	claims, ok := httpx.AccessClaimsFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}
	if domain.Role(claims.Role) == domain.RoleManager {
		own, ok := domain.ParseID(claims.TenantID)
		if !ok || own != id {
			authsdk.ErrForbidden.WriteError(w)
			return
		}
	}

	t, err := h.TenantService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

// HandleUpdate handles PATCH /tenants/{id}
//
//	@Summary		Update tenant
//	@Description	Changes name and/or address. Omitted fields stay as they are.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			id		path		int							true	"Tenant id"
//	@Param			request	body		authsdk.UpdateTenantRequest	true	"Fields to change"
//	@Success		200		{object}	authsdk.Tenant
//	@Failure		400		{object}	authsdk.APIError
//	@Failure		401		{object}	authsdk.APIError
//	@Failure		403		{object}	authsdk.APIError
//	@Failure		404		{object}	authsdk.APIError
//	@Router			/tenants/{id} [patch]
func (h *TenantsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		authsdk.ErrTenantNotFound.WriteError(w)
		return
	}

	var req authsdk.UpdateTenantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.TenantService.Update(r.Context(), id, req.Name, req.Address)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

// HandleDelete handles DELETE /tenants/{id}
//
//	@Summary		Delete tenant
//	@Description	Deletes the tenant; its managers remain without a tenant.
//	@Tags			Tenants
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Tenant id"
//	@Success		204
//	@Failure		401	{object}	authsdk.APIError
//	@Failure		403	{object}	authsdk.APIError
//	@Failure		404	{object}	authsdk.APIError
//	@Router			/tenants/{id} [delete]
func (h *TenantsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		authsdk.ErrTenantNotFound.WriteError(w)
		return
	}

	if err := h.TenantService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
