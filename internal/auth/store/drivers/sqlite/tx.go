package sqlite

import (
	"context"
	"database/sql"

	"github.com/Achrafml23/nutrition-app/internal/auth/store"
)

// txStore exposes the repositories over an open *sql.Tx so service code can
// run multi-statement operations atomically through the same interfaces.
type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore { return &txStore{tx: tx} }

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{db: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) Close() error                   { return nil }

// WithTx on an already open transaction just runs fn against it. SQLite has
// no nested transactions, so the outer caller owns commit and rollback.
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return fn(t)
}

func (t *txStore) ApplyMigrations() error { return nil }
