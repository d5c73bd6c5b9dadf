package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// AuthHandler serves the credential lifecycle routes under /auth.
type AuthHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register
//	@Description	Creates a customer account and signs it in. Tokens are returned as accessToken and refreshToken cookies.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	authsdk.IDResponse		"id of the new user"
//	@Failure		400		{object}	authsdk.APIError		"invalid input or email already registered"
//	@Failure		500		{object}	authsdk.APIError		"internal server error"
//	@Router			/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateAccount(req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	res, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setTokenCookies(w, res.Tokens)
	httpx.WriteJSON(w, http.StatusCreated, authsdk.IDResponse{ID: res.User.ID})
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Login
//	@Description	Signs in with email and password. An unknown email and a wrong password produce the same error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.IDResponse		"id of the signed in user"
//	@Failure		400		{object}	authsdk.APIError		"invalid credentials"
//	@Failure		500		{object}	authsdk.APIError		"internal server error"
//	@Router			/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		authsdk.ErrInvalidCredentials.WriteError(w)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setTokenCookies(w, res.Tokens)
	httpx.WriteJSON(w, http.StatusOK, authsdk.IDResponse{ID: res.User.ID})
}

// HandleSelf handles GET /auth/self
//
//	@Summary		Current user
//	@Description	Returns the signed in user. With expand=tenant, managers and admins also get their tenant.
//	@Tags			Auth
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			expand	query		string				false	"set to tenant to include the tenant"
//	@Success		200		{object}	authsdk.User		"public user"
//	@Failure		401		{object}	authsdk.APIError	"missing or invalid access token, or user no longer exists"
//	@Failure		500		{object}	authsdk.APIError	"internal server error"
//	@Router			/auth/self [get]
func (h *AuthHandler) HandleSelf(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.AccessClaimsFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}
	userID, ok := domain.ParseID(claims.Subject)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	expand := r.URL.Query().Get("expand") == "tenant"

	user, err := h.AuthService.WhoAmI(r.Context(), userID, expand)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleRefresh handles POST /auth/refresh
//
//	@Summary		Refresh tokens
//	@Description	Rotates the refresh token from the refreshToken cookie. The presented token is revoked and can never be used again.
//	@Tags			Auth
//	@Produce		json
//	@Security		CookieAuth
//	@Success		200	{object}	authsdk.IDResponse	"id of the user"
//	@Failure		401	{object}	authsdk.APIError	"missing, invalid or revoked refresh token, or user no longer exists"
//	@Failure		500	{object}	authsdk.APIError	"internal server error"
//	@Router			/auth/refresh [post]
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.RefreshClaimsFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}
	userID, okUser := domain.ParseID(claims.Subject)
	sessionID, okSession := domain.ParseID(claims.SessionID())
	if !okUser || !okSession {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), userID, sessionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setTokenCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, authsdk.IDResponse{ID: userID})
}

// HandleLogout handles POST /auth/logout
//
//	@Summary		Logout
//	@Description	Revokes the session named by the refreshToken cookie, if any, and clears both cookies. Always succeeds for an authenticated caller.
//	@Tags			Auth
//	@Produce		json
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Success		200	{object}	object				"empty object"
//	@Failure		401	{object}	authsdk.APIError	"missing or invalid access token"
//	@Router			/auth/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if claims, ok := httpx.RefreshClaimsFromContext(ctx); ok {
		if sessionID, ok := domain.ParseID(claims.SessionID()); ok {
			h.AuthService.Logout(ctx, sessionID)
		}
	} else {
		slogx.FromContext(ctx).Debug("logout without a usable refresh token")
	}

	h.Cookies.clearTokenCookies(w)
	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
