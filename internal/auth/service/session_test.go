package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Achrafml23/nutrition-app/internal/auth/domain"
	"github.com/Achrafml23/nutrition-app/internal/auth/store"
	"github.com/Achrafml23/nutrition-app/internal/auth/store/drivers/sqlite"
	"github.com/Achrafml23/nutrition-app/pkg/cryptox"
	"github.com/Achrafml23/nutrition-app/pkg/idx"
	"github.com/Achrafml23/nutrition-app/pkg/jwtx"
)

const testPassword = "correct horse battery staple"

func newTestDeps(t *testing.T) (*SessionService, *UserService, store.Store) {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	signer, err := jwtx.NewSigner([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	sessions := &SessionService{
		Signer:     signer,
		Store:      s,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}
	return sessions, &UserService{Store: s}, s
}

func createTestUser(t *testing.T, s store.Store, active bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID:           idx.New().String(),
		Email:        "user-" + idx.New().String() + "@example.com",
		FullName:     "Test User",
		PasswordHash: hash,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestAuthenticate(t *testing.T) {
	_, users, s := newTestDeps(t)
	ctx := context.Background()
	u := createTestUser(t, s, true)

	got, err := users.Authenticate(ctx, u.Email, testPassword)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = users.Authenticate(ctx, u.Email, "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, err = users.Authenticate(ctx, "nobody@example.com", testPassword)
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	_, users, s := newTestDeps(t)
	u := createTestUser(t, s, false)

	_, err := users.Authenticate(context.Background(), u.Email, testPassword)
	require.ErrorIs(t, err, ErrUserInactive)
}

func TestIssueTokensCreatesLedgerRecord(t *testing.T) {
	sessions, _, s := newTestDeps(t)
	ctx := context.Background()
	u := createTestUser(t, s, true)

	pair, err := sessions.IssueTokens(ctx, u)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, u.ID, pair.User.ID)

	claims, err := sessions.Signer.Verify(pair.RefreshToken)
	require.NoError(t, err)

	rec, err := s.RefreshTokens().GetActiveRefreshToken(ctx, claims.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, rec.UserID)
}

func TestRefreshRotatesToken(t *testing.T) {
	sessions, _, s := newTestDeps(t)
	ctx := context.Background()
	u := createTestUser(t, s, true)

	pair, err := sessions.IssueTokens(ctx, u)
	require.NoError(t, err)

	rotated, err := sessions.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old token is spent. Presenting it again is a replay.
	_, err = sessions.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenReused)

	// The new one works: rotation chains indefinitely.
	again, err := sessions.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, rotated.RefreshToken, again.RefreshToken)
}

func TestRefreshFailureTaxonomy(t *testing.T) {
	sessions, _, s := newTestDeps(t)
	ctx := context.Background()
	u := createTestUser(t, s, true)

	t.Run("missing", func(t *testing.T) {
		_, err := sessions.Refresh(ctx, "")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := sessions.Refresh(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("bad signature", func(t *testing.T) {
		other, err := jwtx.NewSigner([]byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)
		forged, _, err := other.IssueRefresh(u.ID, time.Hour)
		require.NoError(t, err)

		_, err = sessions.Refresh(ctx, forged)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		stale, _, err := sessions.Signer.IssueRefresh(u.ID, -time.Minute)
		require.NoError(t, err)

		_, err = sessions.Refresh(ctx, stale)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("valid material without ledger record", func(t *testing.T) {
		orphan, _, err := sessions.Signer.IssueRefresh(u.ID, time.Hour)
		require.NoError(t, err)

		_, err = sessions.Refresh(ctx, orphan)
		require.ErrorIs(t, err, ErrTokenReused)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		access, err := sessions.Signer.IssueAccess(u.ID, time.Hour)
		require.NoError(t, err)

		// Access tokens carry no jti, so there is no ledger record to
		// rotate and the refresh must fail.
		_, err = sessions.Refresh(ctx, access)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshConcurrentExactlyOneWins(t *testing.T) {
	sessions, _, s := newTestDeps(t)
	ctx := context.Background()
	u := createTestUser(t, s, true)

	pair, err := sessions.IssueTokens(ctx, u)
	require.NoError(t, err)

	const racers = 4
	var wg sync.WaitGroup
	results := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = sessions.Refresh(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, ErrTokenReused)
	}
	require.Equal(t, 1, wins)
}

func TestRefreshDeactivatedUser(t *testing.T) {
	sessions, _, s := newTestDeps(t)
	ctx := context.Background()
	u := createTestUser(t, s, true)

	pair, err := sessions.IssueTokens(ctx, u)
	require.NoError(t, err)

	require.NoError(t, s.Users().SetUserActive(ctx, u.ID, false))

	_, err = sessions.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUserInactive)

	// The failed refresh rolled back, so the ledger record is still active
	// and reactivating the account restores the session.
	require.NoError(t, s.Users().SetUserActive(ctx, u.ID, true))

	_, err = sessions.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutRevokesAndIsIdempotent(t *testing.T) {
	sessions, _, s := newTestDeps(t)
	ctx := context.Background()
	u := createTestUser(t, s, true)

	pair, err := sessions.IssueTokens(ctx, u)
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(ctx, pair.RefreshToken))

	_, err = sessions.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenReused)

	// Logging out again, with garbage, or with nothing at all still works.
	require.NoError(t, sessions.Logout(ctx, pair.RefreshToken))
	require.NoError(t, sessions.Logout(ctx, "garbage"))
	require.NoError(t, sessions.Logout(ctx, ""))
}

func TestIndependentSessionsDoNotInterfere(t *testing.T) {
	sessions, _, s := newTestDeps(t)
	ctx := context.Background()
	u := createTestUser(t, s, true)

	first, err := sessions.IssueTokens(ctx, u)
	require.NoError(t, err)
	second, err := sessions.IssueTokens(ctx, u)
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(ctx, first.RefreshToken))

	// The other session's chain still rotates.
	_, err = sessions.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}
