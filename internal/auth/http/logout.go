package http

import (
	"net/http"

	"github.com/Achrafml23/nutrition-app/internal/auth/service"
	"github.com/Achrafml23/nutrition-app/pkg/authclient"
	"github.com/Achrafml23/nutrition-app/pkg/httpx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

// LogoutHandler serves POST /logout. Logout always succeeds from the
// caller's point of view: the cookie is cleared no matter what the ledger
// says, and revoking an already dead token is fine.
type LogoutHandler struct {
	SessionService *service.SessionService
	Cookies        CookieConfig
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Revokes the refresh token behind the cookie and clears the cookie. Idempotent; succeeds with or without a valid cookie.
//	@Tags			Login
//	@Produce		json
//	@Success		200	{object}	authclient.MessageResponse	"message"
//	@Router			/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.SessionService.Logout(ctx, refreshTokenFromRequest(r)); err != nil {
		// The revocation failing must not keep the user logged in; clear the
		// cookie regardless and only log the storage trouble.
		slogx.FromContext(ctx).Error("logout revocation failed", "error", err)
	}

	http.SetCookie(w, clearRefreshCookie(h.Cookies))
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authclient.MessageResponse{
		Message: "Logged out successfully",
	})
}
