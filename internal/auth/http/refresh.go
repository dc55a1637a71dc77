package http

import (
	"errors"
	"net/http"

	"github.com/Achrafml23/nutrition-app/internal/auth/service"
	"github.com/Achrafml23/nutrition-app/pkg/authclient"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

// RefreshHandler serves POST /login/refresh-token. The refresh token travels
// exclusively in the HttpOnly cookie; a successful call rotates it and sets
// the replacement. On failure the cookie is left untouched, so a client
// racing itself does not clobber the winner's new cookie.
type RefreshHandler struct {
	SessionService *service.SessionService
	Cookies        CookieConfig
}

// ServeHTTP godoc
//
//	@Summary		Refresh access token
//	@Description	Rotates the refresh token cookie and returns a fresh access token. Each refresh token is single use; presenting one twice fails.
//	@Tags			Login
//	@Produce		json
//	@Success		200	{object}	authclient.TokenResponse	"access_token, token_type, user"
//	@Failure		401	{object}	authclient.ErrorResponse	"detail"
//	@Router			/login/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	pair, err := h.SessionService.Refresh(ctx, refreshTokenFromRequest(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingToken),
			errors.Is(err, service.ErrInvalidToken),
			errors.Is(err, service.ErrTokenExpired),
			errors.Is(err, service.ErrTokenReused),
			errors.Is(err, service.ErrUserInactive):
			// One uniform response for every rejection reason. Telling an
			// attacker which check failed only helps the attacker.
			authclient.ErrCouldNotValidate.WriteError(w)
		default:
			l.Error("refresh failed", "error", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	writeTokenResponse(w, h.Cookies, pair)
}
