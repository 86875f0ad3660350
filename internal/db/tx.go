package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/jmoiron/sqlx"
)

// TxRunner runs fn inside a transaction that travels in the context.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Transactor struct {
	db   *sqlx.DB
	opts *sql.TxOptions
}

func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{db: db, opts: &sql.TxOptions{Isolation: sql.LevelReadCommitted}}
}

// InTx commits when fn returns nil and rolls back otherwise. A call made
// with a context that already carries a transaction joins it.
func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if store.TxFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := t.db.BeginTxx(ctx, t.opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(store.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
