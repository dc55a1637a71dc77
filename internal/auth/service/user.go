package service

import (
	"context"
	"errors"

	"github.com/Achrafml23/nutrition-app/internal/auth/domain"
	"github.com/Achrafml23/nutrition-app/internal/auth/store"
	"github.com/Achrafml23/nutrition-app/pkg/cryptox"
)

var (
	ErrBadCredentials = errors.New("bad_credentials")
	ErrUserNotFound   = errors.New("user_not_found")
)

type UserService struct {
	Store store.Store
}

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords both come back as ErrBadCredentials; a correct password for a
// deactivated account is ErrUserInactive, checked after the credentials so
// the response cannot be used to probe which accounts exist.
func (s *UserService) Authenticate(
	ctx context.Context,
	email, password string,
) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn time comparable to a real verification so timing does not
			// reveal whether the email exists.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			return domain.User{}, ErrBadCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrBadCredentials
	}

	if !user.Active {
		return domain.User{}, ErrUserInactive
	}

	return user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
