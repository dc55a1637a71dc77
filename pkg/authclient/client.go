package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RefreshCookieName is the cookie carrying refresh token material.
const RefreshCookieName = "refresh_token"

// Client drives the auth service over HTTP. It tracks the refresh cookie
// itself rather than using a cookie jar, because the service marks the
// cookie Secure and jars refuse to replay Secure cookies over the plain
// HTTP connections used in tests.
type Client struct {
	baseURL string
	http    *http.Client

	refreshCookie *http.Cookie
}

// New creates a client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// RefreshCookie returns the most recently received refresh cookie, or nil.
func (c *Client) RefreshCookie() *http.Cookie { return c.refreshCookie }

// SetRefreshCookie overrides the stored refresh cookie, letting tests replay
// stale or fabricated refresh material.
func (c *Client) SetRefreshCookie(cookie *http.Cookie) { c.refreshCookie = cookie }

// Login performs the password login and captures the refresh cookie.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/login/access-token", strings.NewReader(form.Encode()))
	if err != nil {
		return TokenResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out TokenResponse
	if err := c.do(req, &out); err != nil {
		return TokenResponse{}, err
	}
	return out, nil
}

// Refresh exchanges the stored refresh cookie for a new token pair.
func (c *Client) Refresh(ctx context.Context) (TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/login/refresh-token", nil)
	if err != nil {
		return TokenResponse{}, err
	}
	if c.refreshCookie != nil {
		req.AddCookie(c.refreshCookie)
	}

	var out TokenResponse
	if err := c.do(req, &out); err != nil {
		return TokenResponse{}, err
	}
	return out, nil
}

// Logout invalidates the stored refresh token and drops the cookie.
func (c *Client) Logout(ctx context.Context) (MessageResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logout", nil)
	if err != nil {
		return MessageResponse{}, err
	}
	if c.refreshCookie != nil {
		req.AddCookie(c.refreshCookie)
	}

	var out MessageResponse
	if err := c.do(req, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}

// TestToken echoes the user behind an access token.
func (c *Client) TestToken(ctx context.Context, accessToken string) (UserPublic, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/login/test-token", nil)
	if err != nil {
		return UserPublic{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var out UserPublic
	if err := c.do(req, &out); err != nil {
		return UserPublic{}, err
	}
	return out, nil
}

// RecoverPassword requests a password recovery email.
func (c *Client) RecoverPassword(ctx context.Context, email string) (MessageResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/password-recovery/"+url.PathEscape(email), nil)
	if err != nil {
		return MessageResponse{}, err
	}

	var out MessageResponse
	if err := c.do(req, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}

// ResetPassword completes a recovery with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (MessageResponse, error) {
	body, err := json.Marshal(NewPasswordRequest{Token: token, NewPassword: newPassword})
	if err != nil {
		return MessageResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/reset-password", bytes.NewReader(body))
	if err != nil {
		return MessageResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out MessageResponse
	if err := c.do(req, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}

// do executes the request, captures any refresh cookie on the response and
// decodes either the success body into out or the error body into APIError.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == RefreshCookieName {
			if cookie.MaxAge < 0 || cookie.Value == "" {
				c.refreshCookie = nil
			} else {
				c.refreshCookie = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
			}
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
			return &APIError{StatusCode: resp.StatusCode, Detail: errResp.Detail}
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
