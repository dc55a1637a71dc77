package auth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Achrafml23/nutrition-app/pkg/authclient"
)

func TestLogoutEndsSession(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.New(baseURL)

	_, err := client.Login(t.Context(), superuserEmail, superuserPassword)
	require.NoError(t, err)
	cookie := client.RefreshCookie()

	msg, err := client.Logout(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, msg.Message)

	// The server told the browser to drop the cookie.
	require.Nil(t, client.RefreshCookie())

	// The revoked token cannot refresh anymore.
	client.SetRefreshCookie(cookie)
	_, err = client.Refresh(t.Context())
	var apiErr *authclient.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestLogoutIsIdempotent(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.New(baseURL)

	// Logout with no session at all still succeeds.
	_, err := client.Logout(t.Context())
	require.NoError(t, err)

	_, err = client.Login(t.Context(), superuserEmail, superuserPassword)
	require.NoError(t, err)
	cookie := client.RefreshCookie()

	_, err = client.Logout(t.Context())
	require.NoError(t, err)

	// Logging out again with the same dead cookie is fine too.
	client.SetRefreshCookie(cookie)
	_, err = client.Logout(t.Context())
	require.NoError(t, err)
}
