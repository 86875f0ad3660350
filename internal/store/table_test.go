package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	OwnerID   int       `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	IsActive  bool      `db:"is_active"`
}

var widgetSchema = Schema[widget]{
	Table:   "widgets",
	Columns: []string{"id", "name", "owner_id", "created_at", "updated_at", "is_active"},
	Insert:  []string{"name", "owner_id", "created_at", "updated_at", "is_active"},
	Update:  []string{"name", "updated_at"},
	ID:      func(w *widget) int { return w.ID },
	Args: func(w *widget) map[string]interface{} {
		return map[string]interface{}{
			"name":       w.Name,
			"owner_id":   w.OwnerID,
			"created_at": w.CreatedAt,
			"updated_at": w.UpdatedAt,
			"is_active":  w.IsActive,
		}
	},
}

var now = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

var widgetCols = []string{"id", "name", "owner_id", "created_at", "updated_at", "is_active"}

func setupMock(t *testing.T) (*Table[widget], sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	table := NewTable(sqlxDB, widgetSchema, clock.Fixed(now))

	return table, mock, func() { sqlxDB.Close() }
}

func TestListWhere_AddsActiveTermAndOrder(t *testing.T) {
	table, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, owner_id, created_at, updated_at, is_active FROM widgets WHERE is_active = TRUE AND owner_id = $1 AND name <> $2 ORDER BY name DESC")).
		WithArgs(7, "old").
		WillReturnRows(sqlmock.NewRows(widgetCols).
			AddRow(2, "b", 7, now, now, true).
			AddRow(1, "a", 7, now, now, true))

	items, err := table.ListWhere(context.Background(), Where(Eq("owner_id", 7), NotEq("name", "old")).OrderBy("name desc"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListWhere_In(t *testing.T) {
	table, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, owner_id, created_at, updated_at, is_active FROM widgets WHERE is_active = TRUE AND owner_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(widgetCols))

	items, err := table.ListWhere(context.Background(), Where(In("owner_id", []int64{1, 2})))
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestListWhere_RejectsUnknownColumn(t *testing.T) {
	table, _, close := setupMock(t)
	defer close()

	_, err := table.ListWhere(context.Background(), Where(Eq("name; DROP TABLE widgets", 1)))
	require.Error(t, err)

	_, err = table.ListWhere(context.Background(), Where().OrderBy("name sideways"))
	require.Error(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	table, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, owner_id, created_at, updated_at, is_active FROM widgets WHERE is_active = TRUE AND id = $1 ORDER BY id LIMIT 1")).
		WithArgs(9).
		WillReturnError(sql.ErrNoRows)

	w, err := table.GetByID(context.Background(), 9)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFirstWhere_ForUpdate(t *testing.T) {
	table, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, owner_id, created_at, updated_at, is_active FROM widgets WHERE is_active = TRUE AND id = $1 ORDER BY id LIMIT 1 FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(widgetCols).AddRow(4, "d", 1, now, now, true))

	w, err := table.GetFirstWhere(context.Background(), Where(Eq("id", 4)).ForUpdate())
	require.NoError(t, err)
	assert.Equal(t, "d", w.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFilter_AndKeepsLock(t *testing.T) {
	f := Where(Eq("id", 1)).ForUpdate().And(Eq("owner_id", 2))
	assert.True(t, f.Lock)
	assert.Len(t, f.Conds, 2)
}

func TestAdd(t *testing.T) {
	table, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO widgets (name, owner_id, created_at, updated_at, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING id, name, owner_id, created_at, updated_at, is_active")).
		WithArgs("new", 3, now, now, true).
		WillReturnRows(sqlmock.NewRows(widgetCols).AddRow(11, "new", 3, now, now, true))

	w := &widget{Name: "new", OwnerID: 3, CreatedAt: now, UpdatedAt: now, IsActive: true}
	require.NoError(t, table.Add(context.Background(), w))
	assert.Equal(t, 11, w.ID)
}

func TestUpdate(t *testing.T) {
	table, mock, close := setupMock(t)
	defer close()

	later := now.Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE widgets SET name = $1, updated_at = $2 WHERE id = $3 AND is_active = TRUE RETURNING id, name, owner_id, created_at, updated_at, is_active")).
		WithArgs("renamed", later, 11).
		WillReturnRows(sqlmock.NewRows(widgetCols).AddRow(11, "renamed", 3, now, later, true))

	w := &widget{ID: 11, Name: "renamed", UpdatedAt: later}
	require.NoError(t, table.Update(context.Background(), w))
	assert.Equal(t, 3, w.OwnerID)

	mock.ExpectQuery("UPDATE widgets SET").WillReturnError(sql.ErrNoRows)
	err := table.Update(context.Background(), &widget{ID: 99})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_IsSoft(t *testing.T) {
	table, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE")).
		WithArgs(now, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, table.Delete(context.Background(), 5))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET is_active = FALSE")).
		WithArgs(now, 6).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, table.Delete(context.Background(), 6), ErrNotFound)
}

func TestConn_UsesTxFromContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	defer sqlxDB.Close()

	mock.ExpectBegin()
	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, TxFrom(ctx))
	assert.Equal(t, Querier(tx), Conn(ctx, sqlxDB))
	assert.Equal(t, Querier(sqlxDB), Conn(context.Background(), sqlxDB))
}
