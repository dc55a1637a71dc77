package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return s
}

func TestNewSignerRejectsShortKeys(t *testing.T) {
	t.Parallel()

	_, err := NewSigner(nil)
	require.ErrorIs(t, err, ErrEmptyKey)

	_, err = NewSigner([]byte("too-short"))
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	token, err := s.IssueAccess("user-1", DefaultAccessTokenTTL)
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Empty(t, claims.ID)

	wantExp := time.Now().Add(DefaultAccessTokenTTL)
	require.WithinDuration(t, wantExp, claims.ExpiresAt.Time, 5*time.Second)
}

func TestRefreshTokenCarriesFreshJTI(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	token1, jti1, err := s.IssueRefresh("user-1", DefaultRefreshTokenTTL)
	require.NoError(t, err)
	token2, jti2, err := s.IssueRefresh("user-1", DefaultRefreshTokenTTL)
	require.NoError(t, err)

	require.NotEqual(t, jti1, jti2, "jti must be fresh on every issuance")
	require.NotEqual(t, token1, token2)

	claims, err := s.Verify(token1)
	require.NoError(t, err)
	require.Equal(t, jti1, claims.ID)
	require.Equal(t, "user-1", claims.Subject)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	token, _, err := s.IssueRefresh("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongKey(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	other, err := NewSigner([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	token, err := other.IssueAccess("user-1", time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureCheckedBeforeExpiry(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	other, err := NewSigner([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	// Expired AND signed with the wrong key: the signature failure wins.
	token, err := other.IssueAccess("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := s.Verify(tok)
		require.ErrorIs(t, err, ErrMalformed, "token %q", tok)
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.Error(t, err)
}

func TestResetTokenRoundTrip(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	token, err := s.IssueReset("user@example.com", time.Hour)
	require.NoError(t, err)

	email, err := s.VerifyReset(token)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", email)
}

func TestResetTokenExpired(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	token, err := s.IssueReset("user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = s.VerifyReset(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestResetAndAccessTokensNotInterchangeable(t *testing.T) {
	t.Parallel()
	s := testSigner(t)

	access, err := s.IssueAccess("user-1", time.Hour)
	require.NoError(t, err)
	_, err = s.VerifyReset(access)
	require.ErrorIs(t, err, ErrMalformed)

	reset, err := s.IssueReset("user@example.com", time.Hour)
	require.NoError(t, err)
	_, err = s.Verify(reset)
	require.ErrorIs(t, err, ErrMalformed)
}
