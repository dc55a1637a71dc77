package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Achrafml23/nutrition-app/internal/auth/domain"
	"github.com/Achrafml23/nutrition-app/internal/auth/service"
	"github.com/Achrafml23/nutrition-app/pkg/authclient"
	"github.com/Achrafml23/nutrition-app/pkg/httpx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

// LoginHandler serves POST /login/access-token. It accepts an OAuth2
// password-style form body (username is the email) and answers with an
// access token plus a refresh token cookie.
type LoginHandler struct {
	UserService    *service.UserService
	SessionService *service.SessionService
	Cookies        CookieConfig
}

func userPublic(u domain.User) authclient.UserPublic {
	return authclient.UserPublic{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.Active,
		IsSuperuser: u.Superuser,
	}
}

func writeTokenResponse(w http.ResponseWriter, cookies CookieConfig, pair *domain.TokenPair) {
	http.SetCookie(w, newRefreshCookie(cookies, pair.RefreshToken))
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authclient.TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "bearer",
		User:        userPublic(pair.User),
	})
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	OAuth2-compatible password login. Returns an access token in the body and sets the refresh token as an HttpOnly cookie.
//	@Tags			Login
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string						true	"Account email"
//	@Param			password	formData	string						true	"Account password"
//	@Success		200			{object}	authclient.TokenResponse	"access_token, token_type, user"
//	@Failure		400			{object}	authclient.ErrorResponse	"detail"
//	@Router			/login/access-token [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		authclient.ErrInvalidBody.WriteError(w)
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	user, err := h.UserService.Authenticate(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadCredentials):
			authclient.ErrBadCredentials.WriteError(w)
		case errors.Is(err, service.ErrUserInactive):
			authclient.ErrInactiveUser.WriteError(w)
		default:
			l.Error("login failed", "error", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	pair, err := h.SessionService.IssueTokens(ctx, user)
	if err != nil {
		l.Error("failed to issue tokens", "error", err)
		authclient.ErrServerError.WriteError(w)
		return
	}

	writeTokenResponse(w, h.Cookies, pair)
}
