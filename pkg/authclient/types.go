// Package authclient holds the wire types of the auth service API and a
// small HTTP client for driving it, shared between the server handlers and
// the end-to-end test suite.
package authclient

// UserPublic is the safe-to-expose projection of a user account.
type UserPublic struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// TokenResponse is the login/refresh response body. The refresh token is
// deliberately absent: it travels only in the HttpOnly cookie.
type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        UserPublic `json:"user"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body shape for all failure responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NewPasswordRequest is the reset-password request body.
type NewPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// HealthChecks reports per-dependency status on the readiness endpoint.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
