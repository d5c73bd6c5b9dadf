package service

import "errors"

var (
	ErrUserAlreadyExists        = errors.New("user_already_exists")
	ErrInvalidCredentials       = errors.New("invalid_credentials")
	ErrUserNotFound             = errors.New("user_not_found")
	ErrTenantNotFound           = errors.New("tenant_not_found")
	ErrAdminCredentialsNotFound = errors.New("admin_credentials_not_found")
	ErrInvalidRole              = errors.New("invalid_role")
	ErrInvalidInput             = errors.New("invalid_input")
	ErrSessionRevoked           = errors.New("session_revoked")
)
