package http

import (
	"errors"
	"net/http"

	"github.com/Achrafml23/nutrition-app/internal/auth/service"
	"github.com/Achrafml23/nutrition-app/pkg/authclient"
	"github.com/Achrafml23/nutrition-app/pkg/httpx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

// TestTokenHandler serves POST /login/test-token. It sits behind the bearer
// authn middleware; all that is left to do here is load the user the token
// points at.
type TestTokenHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Test access token
//	@Description	Validates the presented bearer token and returns the account it belongs to.
//	@Tags			Login
//	@Produce		json
//	@Success		200	{object}	authclient.UserPublic		"id, email, full_name, is_active, is_superuser"
//	@Failure		401	{object}	authclient.ErrorResponse	"detail"
//	@Security		BearerAuth
//	@Router			/login/test-token [post].
func (h *TestTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.GetUserByID(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			authclient.ErrCouldNotValidate.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("test-token lookup failed", "error", err)
		authclient.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userPublic(user))
}
