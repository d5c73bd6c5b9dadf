package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/identity/pkg/authsdk"
)

const (
	maxBodyBytes   = 1 << 20
	minPasswordLen = 8
	maxPasswordLen = 128
	maxNameLen     = 100
)

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
// On failure it has already written the 400 response.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}

func writeInvalid(w http.ResponseWriter, msg string) {
	authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorTypeInvalidRequest, msg).WriteError(w)
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLen || n > maxPasswordLen {
		return fmt.Errorf("password must be %d-%d characters", minPasswordLen, maxPasswordLen)
	}
	return nil
}

func validateName(field, v string) error {
	v = strings.TrimSpace(v)
	if v == "" || utf8.RuneCountInString(v) > maxNameLen {
		return fmt.Errorf("%s must be 1-%d characters", field, maxNameLen)
	}
	return nil
}

// validateAccount checks the fields shared by registration and admin user
// creation and returns the first problem found.
func validateAccount(firstName, lastName, email, password string) error {
	for _, err := range []error{
		validateName("firstName", firstName),
		validateName("lastName", lastName),
		validateEmail(email),
		validatePassword(password),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// validateUserUpdate checks only the fields present in req.
func validateUserUpdate(req authsdk.UpdateUserRequest) error {
	if req.FirstName != nil {
		if err := validateName("firstName", *req.FirstName); err != nil {
			return err
		}
	}
	if req.LastName != nil {
		if err := validateName("lastName", *req.LastName); err != nil {
			return err
		}
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return err
		}
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return err
		}
	}
	if req.TenantID.Value != nil && *req.TenantID.Value <= 0 {
		return fmt.Errorf("tenantId must be a positive integer or null")
	}
	return nil
}
