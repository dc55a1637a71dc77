package store

import (
	"context"
	"errors"

	"github.com/Achrafml23/nutrition-app/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface; concrete drivers (sqlite)
// implement it. Sub-repositories keep the surface tidy and make it obvious
// which operations are available inside a transaction.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Refresh rotation
	// depends on this: the revoke of the old record and the insert of the new
	// one must land together or not at all.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store with explicit Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during credential verification.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// SetUserActive flips the active flag and bumps updated_at.
	SetUserActive(ctx context.Context, userID string, active bool) error

	// IsEmpty returns true if there are no users (first-run seeding check).
	IsEmpty(ctx context.Context) (bool, error)
}

// RefreshTokens is the refresh token ledger: the single source of truth for
// refresh token validity. Rows are never deleted; invalidation only flips
// the active flag, keeping the replay-detection history intact.
type RefreshTokens interface {
	// CreateRefreshToken inserts a new active ledger record.
	CreateRefreshToken(ctx context.Context, rec domain.RefreshTokenRecord) error

	// GetActiveRefreshToken returns the record only if it is active and
	// unexpired. Absent, revoked and expired records are all ErrNotFound, so
	// callers cannot (and responses must not) distinguish them.
	GetActiveRefreshToken(ctx context.Context, id string) (domain.RefreshTokenRecord, error)

	// RevokeActiveRefreshToken marks the record inactive and reports
	// ErrNotFound if no active unexpired row transitioned. It is the
	// serialization point for concurrent rotations of the same token: of two
	// racing transactions exactly one observes the transition.
	RevokeActiveRefreshToken(ctx context.Context, id string) error

	// RevokeRefreshToken marks the record inactive if it exists; a no-op
	// for absent or already-revoked records. Logout depends on this being
	// idempotent.
	RevokeRefreshToken(ctx context.Context, id string) error
}
