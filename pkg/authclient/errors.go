package authclient

import (
	"fmt"
	"net/http"

	"github.com/Achrafml23/nutrition-app/pkg/httpx"
)

// APIError is an error response of the auth service. It implements error so
// the client can return it directly, and handlers use WriteError to emit it.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Detail is the terse client-facing message. Authentication failures all
	// share one uniform detail so callers cannot distinguish an expired token
	// from a stolen-and-already-used one.
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Detail)
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{Detail: e.Detail})
}

var (
	// ErrBadCredentials covers both unknown email and wrong password.
	ErrBadCredentials = &APIError{
		StatusCode: http.StatusBadRequest,
		Detail:     "Incorrect email or password",
	}

	// ErrInactiveUser is returned when a known account is deactivated.
	ErrInactiveUser = &APIError{
		StatusCode: http.StatusBadRequest,
		Detail:     "Inactive user",
	}

	// ErrCouldNotValidate is the uniform unauthorized response for every
	// refresh failure kind: missing, malformed, bad signature, expired,
	// replayed, or issued to a deactivated account.
	ErrCouldNotValidate = &APIError{
		StatusCode: http.StatusUnauthorized,
		Detail:     "Could not validate credentials",
	}

	// ErrNotEnoughPrivileges is returned when a non-superuser calls an
	// admin-only endpoint.
	ErrNotEnoughPrivileges = &APIError{
		StatusCode: http.StatusForbidden,
		Detail:     "The user doesn't have enough privileges",
	}

	// ErrUserNotFound is returned by password recovery for unknown emails.
	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Detail:     "The user with this email does not exist in the system.",
	}

	// ErrInvalidResetToken is returned for bad password reset tokens.
	ErrInvalidResetToken = &APIError{
		StatusCode: http.StatusBadRequest,
		Detail:     "Invalid token",
	}

	// ErrInvalidBody is returned when a request body cannot be parsed.
	ErrInvalidBody = &APIError{
		StatusCode: http.StatusBadRequest,
		Detail:     "Invalid request body",
	}

	// ErrServerError is returned for persistence and other internal failures.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Detail:     "Internal server error",
	}
)
