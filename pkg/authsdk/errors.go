package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/identity/pkg/httpx"
)

// Error types carried in the envelope, in addition to the httpx ones.
const (
	ErrorTypeInvalidRequest     = "invalid_request"
	ErrorTypeInvalidCredentials = "invalid_credentials"
	ErrorTypeUserAlreadyExists  = "user_already_exists"
	ErrorTypeUserNotFound       = "user_not_found"
	ErrorTypeTenantNotFound     = "tenant_not_found"
	ErrorTypeNotFound           = "not_found"
)

// APIError is the envelope {"errors":[{"type":"...","msg":"..."}]} with its
// status code. Handlers write it and the client returns it.
type APIError struct {
	StatusCode int               `json:"-"`
	Errors     []httpx.ErrorItem `json:"errors"`
}

func (e *APIError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		parts = append(parts, item.Type+": "+item.Msg)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

// Type returns the first error type, or "".
func (e *APIError) Type() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Type
}

// Is matches on status code and first error type, so callers can write
// errors.Is(err, authsdk.ErrInvalidCredentials).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Type() == t.Type()
}

func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, httpx.ErrorBody{Errors: e.Errors})
}

// NewAPIError builds a single-item error.
func NewAPIError(status int, typ, msg string) *APIError {
	return &APIError{StatusCode: status, Errors: []httpx.ErrorItem{{Type: typ, Msg: msg}}}
}

var (
	ErrInvalidRequest     = NewAPIError(http.StatusBadRequest, ErrorTypeInvalidRequest, "the request body is malformed or incomplete")
	ErrInvalidCredentials = NewAPIError(http.StatusBadRequest, ErrorTypeInvalidCredentials, "Invalid email or password")
	ErrUserAlreadyExists  = NewAPIError(http.StatusBadRequest, ErrorTypeUserAlreadyExists, "A user with this email already exists")
	ErrUserNotFound       = NewAPIError(http.StatusUnauthorized, ErrorTypeUserNotFound, "User not found")
	ErrTenantNotFound     = NewAPIError(http.StatusNotFound, ErrorTypeTenantNotFound, "Tenant not found")
	ErrNotFound           = NewAPIError(http.StatusNotFound, ErrorTypeNotFound, "Resource not found")
	ErrInvalidToken       = NewAPIError(http.StatusUnauthorized, httpx.ErrorTypeUnauthorized, "invalid access token")
	ErrForbidden          = NewAPIError(http.StatusForbidden, httpx.ErrorTypeForbidden, httpx.ForbiddenMessage)
	ErrServerError        = NewAPIError(http.StatusInternalServerError, httpx.ErrorTypeInternal, "internal server error")
)

// parseErrorResponse turns a non-2xx response into an *APIError, falling
// back to the status text when the body is not an envelope.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var env httpx.ErrorBody
	if err := json.Unmarshal(body, &env); err == nil && len(env.Errors) > 0 {
		return &APIError{StatusCode: resp.StatusCode, Errors: env.Errors}
	}

	return NewAPIError(resp.StatusCode, httpx.ErrorTypeInternal,
		fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}
