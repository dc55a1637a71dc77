// Package jwtx wraps github.com/golang-jwt/jwt/v5 with the small claim set
// used by the session subsystem: self-contained access tokens {sub, exp} and
// refresh token material {sub, jti, exp} whose jti joins the token to its
// ledger record.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 15 * 24 * time.Hour

	// DefaultResetTokenTTL is the default lifetime for password reset tokens.
	DefaultResetTokenTTL = 48 * time.Hour
)

// minKeyLen guards against accidentally running with a trivial secret.
const minKeyLen = 32

var (
	ErrEmptyKey = errors.New("jwtx: signing key too short")

	// Verify failure taxonomy. Callers branch with errors.Is because the
	// reactions differ: an expired token is a clean unauthorized, a bad
	// signature is worth logging as suspicious, malformed input is noise.
	ErrMalformed        = errors.New("jwtx: malformed token")
	ErrInvalidSignature = errors.New("jwtx: invalid signature")
	ErrExpired          = errors.New("jwtx: token expired")
)

// Claims is the claim set carried by every token this service signs. The
// registered claims cover everything needed: Subject, ID (jti) and ExpiresAt.
type Claims struct {
	jwt.RegisteredClaims
}

// Verifier validates a token string and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer produces and verifies HS256 tokens with a single symmetric key.
// The key is fixed at construction and never mutated, so a Signer is safe
// for concurrent use and tests can construct one per run with an ephemeral
// key instead of touching process-global state.
type Signer struct {
	key []byte
}

// NewSigner builds a Signer from the given symmetric key.
func NewSigner(key []byte) (*Signer, error) {
	if len(key) < minKeyLen {
		return nil, ErrEmptyKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Signer{key: k}, nil
}

// IssueAccess signs a self-contained access token {sub, exp}. Access tokens
// are never persisted or tracked; expiry and signature are their only checks.
func (s *Signer) IssueAccess(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// IssueRefresh signs refresh token material {sub, jti, exp} and returns the
// jti alongside it. The jti is a fresh UUIDv4 on every call; it is never
// reused, and the ledger record keyed by it is the source of truth for the
// token's validity.
func (s *Signer) IssueRefresh(subject string, ttl time.Duration) (token, jti string, err error) {
	now := time.Now().UTC()
	jti = uuid.NewString()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// resetAudience marks password reset tokens so they cannot be presented
// where an access token is expected, and vice versa.
const resetAudience = "password-reset"

// IssueReset signs a short-lived password reset token bound to the account
// email. Reset tokens are stateless; possession within the TTL is the proof.
func (s *Signer) IssueReset(email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Audience:  jwt.ClaimStrings{resetAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// VerifyReset validates a password reset token and returns the email it was
// issued for. Tokens without the reset audience are rejected as malformed.
func (s *Signer) VerifyReset(token string) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(resetAudience),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		default:
			return "", ErrMalformed
		}
	}
	return claims.Subject, nil
}

// Verify decodes the token, checks the signature and then the expiry. The
// algorithm is pinned to HS256 so a token claiming a different method fails
// as a signature error rather than being verified under it.
func (s *Signer) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		default:
			return Claims{}, ErrMalformed
		}
	}
	for _, aud := range claims.Audience {
		if aud == resetAudience {
			return Claims{}, ErrMalformed
		}
	}
	return claims, nil
}
