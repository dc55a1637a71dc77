package sqlite

import (
	"context"
	"time"

	"github.com/Achrafml23/nutrition-app/internal/auth/domain"
	"github.com/Achrafml23/nutrition-app/internal/auth/store"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(
	ctx context.Context,
	rec domain.RefreshTokenRecord,
) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, active, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Active, rec.CreatedAt.Unix(), rec.ExpiresAt.Unix(),
	)
	return mapConstraint(err)
}

// GetActiveRefreshToken deliberately folds revoked and expired records into
// ErrNotFound so a presented token reveals nothing about why it was refused.
func (r *refreshTokensRepo) GetActiveRefreshToken(
	ctx context.Context,
	id string,
) (domain.RefreshTokenRecord, error) {
	var (
		rec                domain.RefreshTokenRecord
		createdAt, expires int64
	)
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, active, created_at, expires_at
		 FROM refresh_tokens
		 WHERE id = ? AND active = 1 AND expires_at > ?`,
		id, time.Now().Unix(),
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Active, &createdAt, &expires)
	if err != nil {
		return domain.RefreshTokenRecord{}, mapNotFound(err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	rec.ExpiresAt = time.Unix(expires, 0).UTC()
	return rec, nil
}

// RevokeActiveRefreshToken only succeeds for the one caller that observes
// the active record transition to inactive. Racing rotations of the same
// token serialize here: the loser sees zero rows updated and gets
// store.ErrNotFound.
func (r *refreshTokensRepo) RevokeActiveRefreshToken(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET active = 0
		 WHERE id = ? AND active = 1 AND expires_at > ?`,
		id, time.Now().Unix(),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// RevokeRefreshToken is unconditional and idempotent. Revoking an absent or
// already revoked record is not an error; logout relies on that.
func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET active = 0 WHERE id = ?`, id)
	return err
}
