package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Achrafml23/nutrition-app/internal/auth/domain"
	"github.com/Achrafml23/nutrition-app/internal/auth/store"
	"github.com/Achrafml23/nutrition-app/pkg/cryptox"
	"github.com/Achrafml23/nutrition-app/pkg/idx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

// BootstrapService seeds the first superuser on an empty database so a
// fresh deployment is immediately usable.
type BootstrapService struct {
	Store store.Store

	SuperuserEmail    string
	SuperuserPassword string
}

// EnsureSuperuser creates the configured superuser if no users exist yet.
// On a populated database it does nothing, so it is safe to run on every
// startup.
func (s *BootstrapService) EnsureSuperuser(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(s.SuperuserPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        s.SuperuserEmail,
		FullName:     "Superuser",
		PasswordHash: hash,
		Active:       true,
		Superuser:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return err
	}

	l.Info("seeded first superuser",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return nil
}
