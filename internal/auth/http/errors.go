package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/identity/internal/auth/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// writeServiceError maps service errors onto the response envelope. Anything
// unexpected is logged in full and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *authsdk.APIError
	var secretErr *jwtx.SecretNotFoundError

	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		apiErr = authsdk.ErrUserAlreadyExists
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = authsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrUserNotFound):
		apiErr = authsdk.ErrUserNotFound
	case errors.Is(err, service.ErrSessionRevoked):
		apiErr = authsdk.ErrInvalidToken
	case errors.Is(err, service.ErrTenantNotFound):
		apiErr = authsdk.ErrTenantNotFound
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidRole):
		apiErr = authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorTypeInvalidRequest, err.Error())
	case errors.As(err, &secretErr):
		slogx.FromContext(r.Context()).Error("signing secret missing", "error", err)
		apiErr = authsdk.ErrServerError
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		apiErr = authsdk.ErrServerError
	}

	apiErr.WriteError(w)
}
