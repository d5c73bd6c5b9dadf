package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
)

// AdminUsersHandler handles privileged account management.
type AdminUsersHandler struct {
	AdminUserService *service.AdminUserService
}

// HandleCreate handles POST /admin/users
//
//	@Summary		Create admin or manager
//	@Description	Creates an admin, or a manager bound to an existing tenant. Customers register themselves.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			request	body		authsdk.CreateUserRequest	true	"Account"
//	@Success		201		{object}	authsdk.User
//	@Failure		400		{object}	authsdk.APIError
//	@Failure		401		{object}	authsdk.APIError
//	@Failure		403		{object}	authsdk.APIError
//	@Failure		404		{object}	authsdk.APIError	"tenant not found"
//	@Router			/admin/users [post]
func (h *AdminUsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateAccount(req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeInvalid(w, "role must be admin or manager")
		return
	}

	in := service.NewUserInput{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Password:  req.Password,
	}

	var user domain.PublicUser
	switch role {
	case domain.RoleAdmin:
		if req.TenantID != nil {
			writeInvalid(w, "admins do not belong to a tenant")
			return
		}
		user, err = h.AdminUserService.CreateAdmin(r.Context(), in)
	case domain.RoleManager:
		if req.TenantID == nil {
			writeInvalid(w, "managers need a tenantId")
			return
		}
		user, err = h.AdminUserService.CreateManager(r.Context(), in, *req.TenantID)
	default:
		writeInvalid(w, "role must be admin or manager")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, user)
}

type userListResponse struct {
	Rows       []domain.PublicUser `json:"rows"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Sort       string              `json:"sort"`
	Order      string              `json:"order"`
	Total      int64               `json:"total"`
	TotalPages int                 `json:"totalPages"`
}

// HandleList handles GET /admin/users
//
//	@Summary		List users
//	@Description	Pages through all users. q matches email, first name and last name case-insensitively.
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			page	query		int		false	"Page, from 1"				default(1)
//	@Param			limit	query		int		false	"Rows per page, 1-100"		default(10)
//	@Param			sort	query		string	false	"id or createdAt"			default(id)
//	@Param			order	query		string	false	"asc or desc"				default(desc)
//	@Param			role	query		string	false	"admin, manager or customer"
//	@Param			q		query		string	false	"Search text, up to 200 characters"
//	@Success		200		{object}	authsdk.UserList
//	@Failure		400		{object}	authsdk.APIError
//	@Failure		401		{object}	authsdk.APIError
//	@Failure		403		{object}	authsdk.APIError
//	@Router			/admin/users [get]
func (h *AdminUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	in := service.ListUsersInput{
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
		Role:   q.Get("role"),
		Search: q.Get("q"),
	}
	for name, dst := range map[string]*int{"page": &in.Page, "limit": &in.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeInvalid(w, name+" must be a positive integer")
			return
		}
		*dst = n
	}

	page, err := h.AdminUserService.List(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userListResponse{
		Rows:       page.Users,
		Page:       page.Page,
		Limit:      page.Limit,
		Sort:       page.Sort,
		Order:      page.Order,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// HandleGet handles GET /admin/users/{id}
//
//	@Summary		Get user
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			id	path		int	true	"User id"
//	@Success		200	{object}	authsdk.User
//	@Failure		401	{object}	authsdk.APIError
//	@Failure		403	{object}	authsdk.APIError
//	@Failure		404	{object}	authsdk.APIError
//	@Router			/admin/users/{id} [get]
func (h *AdminUsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		authsdk.ErrNotFound.WriteError(w)
		return
	}

	user, err := h.AdminUserService.Get(r.Context(), id)
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleUpdate handles PATCH /admin/users/{id}
//
//	@Summary		Update user
//	@Description	Changes names, email, password or tenant. Omitted fields stay as they are; tenantId null detaches a manager. Role cannot be changed.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			id		path		int							true	"User id"
//	@Param			request	body		authsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	authsdk.User
//	@Failure		400		{object}	authsdk.APIError	"invalid input or email already registered"
//	@Failure		401		{object}	authsdk.APIError
//	@Failure		403		{object}	authsdk.APIError
//	@Failure		404		{object}	authsdk.APIError	"user or tenant not found"
//	@Router			/admin/users/{id} [patch]
func (h *AdminUsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		authsdk.ErrNotFound.WriteError(w)
		return
	}

	var req authsdk.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateUserUpdate(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	user, err := h.AdminUserService.Update(r.Context(), id, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		TenantSet: req.TenantID.Set,
		TenantID:  req.TenantID.Value,
	})
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleDelete handles DELETE /admin/users/{id}
//
//	@Summary		Delete user
//	@Description	Deletes the user and all of their sessions.
//	@Tags			Admin
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			id	path	int	true	"User id"
//	@Success		204
//	@Failure		401	{object}	authsdk.APIError
//	@Failure		403	{object}	authsdk.APIError
//	@Failure		404	{object}	authsdk.APIError
//	@Router			/admin/users/{id} [delete]
func (h *AdminUsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		authsdk.ErrNotFound.WriteError(w)
		return
	}

	if err := h.AdminUserService.Delete(r.Context(), id); err != nil {
		writeAdminError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeAdminError reports a missing target user as 404. The caller is
// authenticated; it is the resource that is absent.
func writeAdminError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		authsdk.ErrNotFound.WriteError(w)
		return
	}
	writeServiceError(w, r, err)
}
