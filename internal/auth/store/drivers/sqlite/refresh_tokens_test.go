package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Achrafml23/nutrition-app/internal/auth/domain"
	"github.com/Achrafml23/nutrition-app/internal/auth/store"
	"github.com/Achrafml23/nutrition-app/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID:           idx.New().String(),
		Email:        strings.ToLower(idx.New().String()) + "@example.com",
		FullName:     "Test User",
		PasswordHash: "x",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedToken(t *testing.T, s *Store, userID string, expiresAt time.Time) domain.RefreshTokenRecord {
	t.Helper()

	rec := domain.RefreshTokenRecord{
		ID:        idx.New().String(),
		UserID:    userID,
		Active:    true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		ExpiresAt: expiresAt.Truncate(time.Second),
	}
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(context.Background(), rec))
	return rec
}

func TestGetActiveRefreshToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s)

	rec := seedToken(t, s, user.ID, time.Now().Add(time.Hour))

	got, err := s.RefreshTokens().GetActiveRefreshToken(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.UserID, got.UserID)
	require.True(t, got.Active)
	require.Equal(t, rec.ExpiresAt.UTC(), got.ExpiresAt)
}

func TestGetActiveRefreshToken_AbsentRevokedExpiredLookAlike(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s)

	revoked := seedToken(t, s, user.ID, time.Now().Add(time.Hour))
	require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, revoked.ID))

	expired := seedToken(t, s, user.ID, time.Now().Add(-time.Minute))

	for name, id := range map[string]string{
		"absent":  idx.New().String(),
		"revoked": revoked.ID,
		"expired": expired.ID,
	} {
		_, err := s.RefreshTokens().GetActiveRefreshToken(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound, name)
	}
}

func TestRevokeActiveRefreshToken_ExactlyOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s)

	rec := seedToken(t, s, user.ID, time.Now().Add(time.Hour))

	require.NoError(t, s.RefreshTokens().RevokeActiveRefreshToken(ctx, rec.ID))

	// The transition already happened, so a second attempt loses.
	err := s.RefreshTokens().RevokeActiveRefreshToken(ctx, rec.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRevokeActiveRefreshToken_ExpiredDoesNotTransition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s)

	rec := seedToken(t, s, user.ID, time.Now().Add(-time.Minute))

	err := s.RefreshTokens().RevokeActiveRefreshToken(ctx, rec.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRevokeRefreshToken_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s)

	rec := seedToken(t, s, user.ID, time.Now().Add(time.Hour))

	require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, rec.ID))
	require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, rec.ID))
	require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, idx.New().String()))
}

func TestRevokedRecordSurvives(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s)

	rec := seedToken(t, s, user.ID, time.Now().Add(time.Hour))
	require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, rec.ID))

	// Invalidation never deletes; the row remains for audit.
	var active bool
	row := s.db.QueryRowContext(ctx,
		`SELECT active FROM refresh_tokens WHERE id = ?`, rec.ID)
	require.NoError(t, row.Scan(&active))
	require.False(t, active)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s)

	rec := seedToken(t, s, user.ID, time.Now().Add(time.Hour))

	wantErr := store.ErrNotFound
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeActiveRefreshToken(ctx, rec.ID); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// The revoke inside the failed transaction must not be visible.
	_, err = s.RefreshTokens().GetActiveRefreshToken(ctx, rec.ID)
	require.NoError(t, err)
}

func TestCreateRefreshToken_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s)

	rec := seedToken(t, s, user.ID, time.Now().Add(time.Hour))

	err := s.RefreshTokens().CreateRefreshToken(context.Background(), rec)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}
