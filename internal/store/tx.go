package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Querier is the part of *sqlx.DB and *sqlx.Tx that repositories use.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}

type txKey struct{}

// WithTx returns a context carrying tx. Repositories called with that
// context run their statements inside tx.
func WithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func TxFrom(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

// Conn picks the transaction from ctx if there is one.
func Conn(ctx context.Context, db *sqlx.DB) Querier {
	if tx := TxFrom(ctx); tx != nil {
		return tx
	}
	return db
}
