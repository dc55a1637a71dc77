package service

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/url"
	"time"

	"github.com/Achrafml23/nutrition-app/internal/auth/store"
	"github.com/Achrafml23/nutrition-app/pkg/cryptox"
	"github.com/Achrafml23/nutrition-app/pkg/jwtx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

var ErrInvalidResetToken = errors.New("invalid_reset_token")

// Mailer delivers password recovery messages. The default wiring only logs
// the token; a real SMTP sender can be dropped in without touching the
// service.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer writes the reset token to the log instead of sending mail.
// Useful for development and tests; do not wire it in production.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	slogx.FromContext(ctx).Info("password reset requested",
		slog.String("email", email),
		slog.String("reset_token", token),
	)
	return nil
}

// PasswordResetService implements stateless password recovery: a short
// lived signed token is mailed out, and presenting it back proves control
// of the mailbox.
type PasswordResetService struct {
	Signer       *jwtx.Signer
	Store        store.Store
	Mailer       Mailer
	ResetTTL     time.Duration
	FrontendHost string
}

// ResetEmail is a rendered password recovery message.
type ResetEmail struct {
	Subject     string
	HTMLContent string
}

var resetEmailTemplate = template.Must(template.New("reset").Parse(`<html>
<body>
<p>Password recovery for <strong>{{.Email}}</strong>.</p>
<p>We received a request to reset the password for your account. Use the
link below to choose a new one:</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>The link is valid for {{.ValidHours}} hours. If you did not request a
reset you can ignore this message.</p>
</body>
</html>
`))

// RecoverPassword issues a reset token for the account and hands it to the
// mailer. Unknown emails are reported to the caller; the HTTP layer decides
// how much of that to reveal.
func (s *PasswordResetService) RecoverPassword(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	token, err := s.Signer.IssueReset(user.Email, s.ResetTTL)
	if err != nil {
		return err
	}

	return s.Mailer.SendPasswordReset(ctx, user.Email, token)
}

// RecoverPasswordHTMLContent renders the recovery message for the account
// without sending it. Serves the admin-only email preview endpoint.
func (s *PasswordResetService) RecoverPasswordHTMLContent(
	ctx context.Context,
	email string,
) (ResetEmail, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ResetEmail{}, ErrUserNotFound
		}
		return ResetEmail{}, err
	}

	token, err := s.Signer.IssueReset(user.Email, s.ResetTTL)
	if err != nil {
		return ResetEmail{}, err
	}

	var buf bytes.Buffer
	err = resetEmailTemplate.Execute(&buf, struct {
		Email      string
		Link       string
		ValidHours int
	}{
		Email:      user.Email,
		Link:       s.FrontendHost + "/reset-password?token=" + url.QueryEscape(token),
		ValidHours: int(s.ResetTTL.Hours()),
	})
	if err != nil {
		return ResetEmail{}, err
	}

	return ResetEmail{
		Subject:     "Password recovery for user " + user.Email,
		HTMLContent: buf.String(),
	}, nil
}

// ResetPassword validates a reset token and replaces the account password.
func (s *PasswordResetService) ResetPassword(
	ctx context.Context,
	token, newPassword string,
) error {
	email, err := s.Signer.VerifyReset(token)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !user.Active {
		return ErrUserInactive
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash)
}
