package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Achrafml23/nutrition-app/internal/auth/domain"
	"github.com/Achrafml23/nutrition-app/internal/auth/store"
	"github.com/Achrafml23/nutrition-app/pkg/jwtx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

var (
	ErrMissingToken = errors.New("missing_refresh_token")
	ErrInvalidToken = errors.New("invalid_refresh_token")
	ErrTokenExpired = errors.New("refresh_token_expired")

	// ErrTokenReused means the presented token decoded fine but its ledger
	// record is no longer active: either it was already rotated (replay) or
	// it was revoked. The two are indistinguishable on purpose.
	ErrTokenReused = errors.New("refresh_token_reused")

	ErrUserInactive = errors.New("user_inactive")
)

// SessionService issues access/refresh token pairs and rotates refresh
// tokens against the ledger.
type SessionService struct {
	Signer     *jwtx.Signer
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueTokens mints a fresh token pair for an already authenticated user and
// records the refresh token in the ledger. Every call opens a new session
// chain; prior chains for the same user are unaffected.
func (s *SessionService) IssueTokens(
	ctx context.Context,
	user domain.User,
) (*domain.TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.Signer.IssueAccess(user.ID, s.AccessTTL)
	if err != nil {
		return nil, err
	}

	refresh, jti, err := s.Signer.IssueRefresh(user.ID, s.RefreshTTL)
	if err != nil {
		return nil, err
	}

	err = s.Store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshTokenRecord{
		ID:        jti,
		UserID:    user.ID,
		Active:    true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.RefreshTTL),
	})
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

// Refresh rotates a presented refresh token: the old ledger record goes
// inactive and a brand new pair is issued, atomically. A token that cannot
// be rotated, for whatever reason, leaves the ledger untouched.
func (s *SessionService) Refresh(
	ctx context.Context,
	refreshToken string,
) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.Signer.Verify(refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwtx.ErrInvalidSignature):
			l.Warn("refresh token with invalid signature presented")
			return nil, ErrInvalidToken
		default:
			return nil, ErrInvalidToken
		}
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	var pair *domain.TokenPair

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// The conditional revoke is the rotation's serialization point: of
		// two concurrent presentations of the same token exactly one takes
		// the record from active to inactive. The loser lands here with
		// ErrNotFound, same as any replayed or revoked token.
		if err := tx.RefreshTokens().RevokeActiveRefreshToken(ctx, claims.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				l.Warn("refresh token replay or revoked token presented",
					slog.String("user_id", claims.Subject))
				return ErrTokenReused
			}
			return err
		}

		user, err := tx.Users().GetUserByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserInactive
			}
			return err
		}
		if !user.Active {
			// Returning an error rolls the revoke back, so the record stays
			// active for audit while the account itself blocks the refresh.
			return ErrUserInactive
		}

		now := time.Now().UTC()

		access, err := s.Signer.IssueAccess(user.ID, s.AccessTTL)
		if err != nil {
			return err
		}
		refresh, jti, err := s.Signer.IssueRefresh(user.ID, s.RefreshTTL)
		if err != nil {
			return err
		}

		if err := tx.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshTokenRecord{
			ID:        jti,
			UserID:    user.ID,
			Active:    true,
			CreatedAt: now,
			ExpiresAt: now.Add(s.RefreshTTL),
		}); err != nil {
			return err
		}

		pair = &domain.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			User:         user,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout invalidates the ledger record behind the presented refresh token.
// Absent, malformed, expired and already revoked tokens are all quietly
// accepted: logging out is idempotent and never blocks the caller.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	claims, err := s.Signer.Verify(refreshToken)
	if err != nil || claims.ID == "" {
		return nil
	}

	return s.Store.RefreshTokens().RevokeRefreshToken(ctx, claims.ID)
}
