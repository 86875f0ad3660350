package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("record not found")

// Repository is the generic persistence capability every entity kind gets.
type Repository[T any] interface {
	GetByID(ctx context.Context, id int) (*T, error)
	ListAll(ctx context.Context) ([]T, error)
	ListWhere(ctx context.Context, f Filter) ([]T, error)
	GetFirstWhere(ctx context.Context, f Filter) (*T, error)
	Add(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int) error
}

// Schema describes how T maps onto a table. Every table has id, created_at,
// updated_at and is_active columns.
type Schema[T any] struct {
	Table   string
	Columns []string
	// Insert and Update list the columns written by Add and Update.
	Insert []string
	Update []string
	ID     func(*T) int
	// Args returns the column values of an entity keyed by column name.
	Args func(*T) map[string]interface{}
}

type Table[T any] struct {
	db      *sqlx.DB
	schema  Schema[T]
	clock   clock.Clock
	allowed map[string]bool
}

func NewTable[T any](db *sqlx.DB, schema Schema[T], clk clock.Clock) *Table[T] {
	allowed := make(map[string]bool, len(schema.Columns))
	for _, c := range schema.Columns {
		allowed[c] = true
	}
	return &Table[T]{db: db, schema: schema, clock: clk, allowed: allowed}
}

func (t *Table[T]) selectSQL() string {
	return "SELECT " + strings.Join(t.schema.Columns, ", ") + " FROM " + t.schema.Table
}

func (t *Table[T]) GetByID(ctx context.Context, id int) (*T, error) {
	return t.GetFirstWhere(ctx, Where(Eq("id", id)))
}

func (t *Table[T]) ListAll(ctx context.Context) ([]T, error) {
	return t.ListWhere(ctx, Where().OrderBy("id"))
}

func (t *Table[T]) ListWhere(ctx context.Context, f Filter) ([]T, error) {
	tail, args, err := f.render(t.allowed)
	if err != nil {
		return nil, err
	}

	if f.Lock {
		tail += " FOR UPDATE"
	}

	items := []T{}
	if err := Conn(ctx, t.db).SelectContext(ctx, &items, t.selectSQL()+tail, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (t *Table[T]) GetFirstWhere(ctx context.Context, f Filter) (*T, error) {
	if len(f.Order) == 0 {
		f = f.OrderBy("id")
	}
	tail, args, err := f.render(t.allowed)
	if err != nil {
		return nil, err
	}

	tail += " LIMIT 1"
	if f.Lock {
		tail += " FOR UPDATE"
	}

	var item T
	err = Conn(ctx, t.db).GetContext(ctx, &item, t.selectSQL()+tail, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Add inserts entity and reloads it from the RETURNING row.
func (t *Table[T]) Add(ctx context.Context, entity *T) error {
	values := t.schema.Args(entity)
	placeholders := make([]string, len(t.schema.Insert))
	args := make([]interface{}, len(t.schema.Insert))
	for i, col := range t.schema.Insert {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.schema.Table,
		strings.Join(t.schema.Insert, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(t.schema.Columns, ", "),
	)

	return Conn(ctx, t.db).QueryRowxContext(ctx, query, args...).StructScan(entity)
}

// Update writes the Update columns of an active row and reloads it.
func (t *Table[T]) Update(ctx context.Context, entity *T) error {
	values := t.schema.Args(entity)
	sets := make([]string, len(t.schema.Update))
	args := make([]interface{}, 0, len(t.schema.Update)+1)
	for i, col := range t.schema.Update {
		args = append(args, values[col])
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args = append(args, t.schema.ID(entity))

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND is_active = TRUE RETURNING %s",
		t.schema.Table,
		strings.Join(sets, ", "),
		len(args),
		strings.Join(t.schema.Columns, ", "),
	)

	err := Conn(ctx, t.db).QueryRowxContext(ctx, query, args...).StructScan(entity)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete is a soft delete.
func (t *Table[T]) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf("UPDATE %s SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE", t.schema.Table)

	result, err := Conn(ctx, t.db).ExecContext(ctx, query, t.clock.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
