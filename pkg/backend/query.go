package backend

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Op is a comparison operator of a predicate.
type Op string

const (
	OpEq     Op = "eq"
	OpNeq    Op = "neq"
	OpGt     Op = "gt"
	OpGte    Op = "gte"
	OpLt     Op = "lt"
	OpLte    Op = "lte"
	OpILike  Op = "ilike"  // case-insensitive substring match
	OpIsNull Op = "isnull" // Value is ignored
	OpIn     Op = "in"     // Value is a slice
)

// Predicate constrains a single column.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

func (p Predicate) String() string {
	if p.Op == OpIsNull {
		return fmt.Sprintf("%s.%s", p.Column, p.Op)
	}
	return fmt.Sprintf("%s.%s.%v", p.Column, p.Op, p.Value)
}

// Order sorts the result by a column.
type Order struct {
	Column     string
	Descending bool
}

// Query selects rows of a table. All predicates must hold for a row to match.
//
// Query is a value, the builder methods return modified copies and never
// change the receiver.
type Query struct {
	Predicates []Predicate
	Orders     []Order
	Joins      []string // Names of the related rows to embed, e.g. "wallet"
	Limit      int      // 0 means no limit
}

// NewQuery returns an empty query matching all rows.
func NewQuery() Query {
	return Query{}
}

// ByID returns a query matching the row with the ID.
func ByID(id any) Query {
	return NewQuery().Eq("id", id)
}

func (q Query) clone() Query {
	return Query{
		Predicates: slices.Clone(q.Predicates),
		Orders:     slices.Clone(q.Orders),
		Joins:      slices.Clone(q.Joins),
		Limit:      q.Limit,
	}
}

// Where adds a predicate.
func (q Query) Where(column string, op Op, value any) Query {
	c := q.clone()
	c.Predicates = append(c.Predicates, Predicate{Column: column, Op: op, Value: value})
	return c
}

func (q Query) Eq(column string, value any) Query {
	return q.Where(column, OpEq, value)
}

func (q Query) Gte(column string, value any) Query {
	return q.Where(column, OpGte, value)
}

func (q Query) Lte(column string, value any) Query {
	return q.Where(column, OpLte, value)
}

func (q Query) Lt(column string, value any) Query {
	return q.Where(column, OpLt, value)
}

// ILike adds a case-insensitive substring match.
func (q Query) ILike(column, substring string) Query {
	return q.Where(column, OpILike, substring)
}

func (q Query) IsNull(column string) Query {
	return q.Where(column, OpIsNull, nil)
}

// OrderBy appends an ordering. Earlier orderings take precedence.
func (q Query) OrderBy(column string, descending bool) Query {
	c := q.clone()
	c.Orders = append(c.Orders, Order{Column: column, Descending: descending})
	return c
}

// Join embeds related rows into the result.
func (q Query) Join(relations ...string) Query {
	c := q.clone()
	for _, r := range relations {
		if !slices.Contains(c.Joins, r) {
			c.Joins = append(c.Joins, r)
		}
	}
	return c
}

// WithLimit limits the number of returned rows.
func (q Query) WithLimit(n int) Query {
	c := q.clone()
	c.Limit = n
	return c
}

// Predicate returns the first predicate on the column with the operator.
func (q Query) Predicate(column string, op Op) (Predicate, bool) {
	i := slices.IndexFunc(q.Predicates, func(p Predicate) bool {
		return p.Column == column && p.Op == op
	})
	if i < 0 {
		return Predicate{}, false
	}
	return q.Predicates[i], true
}

// String formats the query similar to a REST query string. It is used for logging.
func (q Query) String() string {
	parts := make([]string, 0, len(q.Predicates)+3)
	for _, p := range q.Predicates {
		parts = append(parts, p.String())
	}

	if len(q.Joins) > 0 {
		parts = append(parts, "select=*,"+strings.Join(q.Joins, ","))
	}

	if len(q.Orders) > 0 {
		orders := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			direction := "asc"
			if o.Descending {
				direction = "desc"
			}
			orders = append(orders, o.Column+"."+direction)
		}
		parts = append(parts, "order="+strings.Join(orders, ","))
	}

	if q.Limit > 0 {
		parts = append(parts, fmt.Sprintf("limit=%d", q.Limit))
	}

	return strings.Join(parts, "&")
}

// Patch is a partial update, mapping column names to new values. A nil value
// sets the column to NULL.
type Patch map[string]any
