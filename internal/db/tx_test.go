package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*Transactor, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewTransactor(sqlxDB), mock, func() { sqlxDB.Close() }
}

func TestInTx_Commits(t *testing.T) {
	tr, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tr.InTx(context.Background(), func(ctx context.Context) error {
		assert.NotNil(t, store.TxFrom(ctx))
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackOnError(t *testing.T) {
	tr, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := tr.InTx(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackOnPanic(t *testing.T) {
	tr, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tr.InTx(context.Background(), func(ctx context.Context) error {
			panic("bad")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_JoinsOuterTransaction(t *testing.T) {
	tr, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tr.InTx(context.Background(), func(outer context.Context) error {
		return tr.InTx(outer, func(inner context.Context) error {
			assert.Same(t, store.TxFrom(outer), store.TxFrom(inner))
			return nil
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
