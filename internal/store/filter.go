package store

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Op string

const (
	OpEq    Op = "="
	OpNotEq Op = "<>"
	OpLt    Op = "<"
	OpLte   Op = "<="
	OpGt    Op = ">"
	OpGte   Op = ">="
	OpIn    Op = "IN"
)

// Cond is a single "column op value" term.
type Cond struct {
	Column string
	Op     Op
	Value  interface{}
}

func Eq(column string, v interface{}) Cond    { return Cond{column, OpEq, v} }
func NotEq(column string, v interface{}) Cond { return Cond{column, OpNotEq, v} }
func Lt(column string, v interface{}) Cond    { return Cond{column, OpLt, v} }
func Lte(column string, v interface{}) Cond   { return Cond{column, OpLte, v} }
func Gt(column string, v interface{}) Cond    { return Cond{column, OpGt, v} }
func Gte(column string, v interface{}) Cond   { return Cond{column, OpGte, v} }

// In matches any of the values. values must be a slice pq.Array understands.
func In(column string, values interface{}) Cond { return Cond{column, OpIn, values} }

// Filter is a conjunction of conditions. The soft-delete term is added by
// Table when the filter is rendered, so a Filter never mentions is_active.
type Filter struct {
	Conds []Cond
	Order []string
	// Lock makes the query take row locks (FOR UPDATE). Only meaningful
	// inside a transaction.
	Lock bool
}

func Where(conds ...Cond) Filter {
	return Filter{Conds: conds}
}

// And returns a copy of f with more conditions.
func (f Filter) And(conds ...Cond) Filter {
	out := Filter{
		Conds: append(append([]Cond{}, f.Conds...), conds...),
		Order: f.Order,
		Lock:  f.Lock,
	}
	return out
}

// OrderBy sets the ordering columns; append " DESC" for descending.
func (f Filter) OrderBy(columns ...string) Filter {
	f.Order = columns
	return f
}

func (f Filter) ForUpdate() Filter {
	f.Lock = true
	return f
}

// render builds the WHERE and ORDER BY tail, numbering placeholders from
// $1. allowed guards column names against the schema.
func (f Filter) render(allowed map[string]bool) (string, []interface{}, error) {
	terms := []string{"is_active = TRUE"}
	args := make([]interface{}, 0, len(f.Conds))

	for _, c := range f.Conds {
		if !allowed[c.Column] {
			return "", nil, fmt.Errorf("store: unknown column %q", c.Column)
		}
		switch c.Op {
		case OpEq, OpNotEq, OpLt, OpLte, OpGt, OpGte:
			args = append(args, c.Value)
			terms = append(terms, fmt.Sprintf("%s %s $%d", c.Column, c.Op, len(args)))
		case OpIn:
			args = append(args, pq.Array(c.Value))
			terms = append(terms, fmt.Sprintf("%s = ANY($%d)", c.Column, len(args)))
		default:
			return "", nil, fmt.Errorf("store: unsupported operator %q", c.Op)
		}
	}

	var b strings.Builder
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(terms, " AND "))

	if len(f.Order) > 0 {
		order := make([]string, 0, len(f.Order))
		for _, o := range f.Order {
			col, dir, _ := strings.Cut(o, " ")
			if !allowed[col] {
				return "", nil, fmt.Errorf("store: unknown order column %q", col)
			}
			dir = strings.ToUpper(strings.TrimSpace(dir))
			if dir != "" && dir != "ASC" && dir != "DESC" {
				return "", nil, fmt.Errorf("store: bad order direction %q", dir)
			}
			order = append(order, strings.TrimSpace(col+" "+dir))
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(order, ", "))
	}

	return b.String(), args, nil
}
