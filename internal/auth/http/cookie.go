package http

import (
	"net/http"
	"time"

	"github.com/Achrafml23/nutrition-app/pkg/authclient"
)

// CookieConfig controls the refresh token cookie attributes. Secure plus
// SameSite=None is what a cross-site browser frontend needs; local
// development keeps Lax so the cookie survives plain http.
type CookieConfig struct {
	Secure     bool
	RefreshTTL time.Duration
}

func (c CookieConfig) sameSite() http.SameSite {
	if c.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// newRefreshCookie scopes the refresh token to the whole API and keeps it
// out of script reach. Max-Age mirrors the token's own TTL so the browser
// drops it around the time it stops being rotatable.
func newRefreshCookie(c CookieConfig, token string) *http.Cookie {
	return &http.Cookie{
		Name:     authclient.RefreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	}
}

// clearRefreshCookie tells the browser to drop the cookie immediately. The
// attributes must match the set cookie or some browsers keep the old one.
func clearRefreshCookie(c CookieConfig) *http.Cookie {
	return &http.Cookie{
		Name:     authclient.RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	}
}

// refreshTokenFromRequest pulls the refresh token out of the cookie; an
// absent cookie is just the empty string, the service decides what that
// means.
func refreshTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(authclient.RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
