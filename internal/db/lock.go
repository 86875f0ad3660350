package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/jmoiron/sqlx"
)

var ErrNoTransaction = errors.New("advisory lock requires a transaction")

// AdvisoryLocker takes Postgres transaction-scoped advisory locks. The lock
// is released when the surrounding transaction ends.
type AdvisoryLocker struct {
	db *sqlx.DB
}

func NewAdvisoryLocker(db *sqlx.DB) *AdvisoryLocker {
	return &AdvisoryLocker{db: db}
}

func (l *AdvisoryLocker) Lock(ctx context.Context, key int64) error {
	if store.TxFrom(ctx) == nil {
		return ErrNoTransaction
	}
	if _, err := store.Conn(ctx, l.db).ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return fmt.Errorf("failed to take advisory lock %d: %w", key, err)
	}
	return nil
}
