package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Achrafml23/nutrition-app/internal/auth/service"
	"github.com/Achrafml23/nutrition-app/pkg/authclient"
	"github.com/Achrafml23/nutrition-app/pkg/httpx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

// RecoverPasswordHandler serves POST /password-recovery/{email}.
type RecoverPasswordHandler struct {
	ResetService *service.PasswordResetService
}

// ServeHTTP godoc
//
//	@Summary		Request password recovery
//	@Description	Sends a password reset token to the given email if an account exists.
//	@Tags			Login
//	@Produce		json
//	@Param			email	path		string						true	"Account email"
//	@Success		200		{object}	authclient.MessageResponse	"message"
//	@Failure		404		{object}	authclient.ErrorResponse	"detail"
//	@Router			/password-recovery/{email} [post].
func (h *RecoverPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ResetService.RecoverPassword(ctx, r.PathValue("email")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			authclient.ErrUserNotFound.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("password recovery failed", "error", err)
		authclient.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.MessageResponse{
		Message: "Password recovery email sent",
	})
}

// ResetPasswordHandler serves POST /reset-password.
type ResetPasswordHandler struct {
	ResetService *service.PasswordResetService
}

// ServeHTTP godoc
//
//	@Summary		Reset password
//	@Description	Replaces the account password using a recovery token.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authclient.NewPasswordRequest	true	"token, new_password"
//	@Success		200		{object}	authclient.MessageResponse		"message"
//	@Failure		400		{object}	authclient.ErrorResponse		"detail"
//	@Router			/reset-password [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authclient.NewPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authclient.ErrInvalidBody.WriteError(w)
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		authclient.ErrInvalidBody.WriteError(w)
		return
	}

	if err := h.ResetService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			authclient.ErrInvalidResetToken.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			authclient.ErrUserNotFound.WriteError(w)
		case errors.Is(err, service.ErrUserInactive):
			authclient.ErrInactiveUser.WriteError(w)
		default:
			slogx.FromContext(ctx).Error("password reset failed", "error", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.MessageResponse{
		Message: "Password updated successfully",
	})
}

// RecoverPasswordHTMLContentHandler serves
// POST /password-recovery-html-content/{email}: a superuser-only preview of
// the recovery email for an account. Sits behind the bearer authn
// middleware.
type RecoverPasswordHTMLContentHandler struct {
	UserService  *service.UserService
	ResetService *service.PasswordResetService
}

// ServeHTTP godoc
//
//	@Summary		Preview password recovery email
//	@Description	Renders the password recovery email for the given account. Superusers only.
//	@Tags			Login
//	@Produce		html
//	@Param			email	path		string						true	"Account email"
//	@Success		200		{string}	string						"rendered email"
//	@Failure		401		{object}	authclient.ErrorResponse	"detail"
//	@Failure		403		{object}	authclient.ErrorResponse	"detail"
//	@Failure		404		{object}	authclient.ErrorResponse	"detail"
//	@Security		BearerAuth
//	@Router			/password-recovery-html-content/{email} [post].
func (h *RecoverPasswordHTMLContentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := h.UserService.GetUserByID(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			authclient.ErrCouldNotValidate.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("recovery preview lookup failed", "error", err)
		authclient.ErrServerError.WriteError(w)
		return
	}
	if !caller.Superuser {
		authclient.ErrNotEnoughPrivileges.WriteError(w)
		return
	}

	email, err := h.ResetService.RecoverPasswordHTMLContent(ctx, r.PathValue("email"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			authclient.ErrUserNotFound.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("recovery preview failed", "error", err)
		authclient.ErrServerError.WriteError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Subject", email.Subject)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(email.HTMLContent))
}
