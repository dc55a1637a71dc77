package domain

import "time"

// TokenPair is what the session service hands back on login and refresh:
// the access token for the response body and the refresh token material for
// the cookie transport.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	User         User
}

// RefreshTokenRecord is the persisted ledger row for one issued refresh
// token, keyed by the jti embedded in the signed material. Exactly one row
// exists per issuance; Active transitions from true to false at most once and never
// back; rows are never deleted so replay history survives.
type RefreshTokenRecord struct {
	ID        string // the jti
	UserID    string
	Active    bool
	CreatedAt time.Time
	ExpiresAt time.Time
}
