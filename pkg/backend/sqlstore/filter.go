package sqlstore

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/walletwise/finance/pkg/backend"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscaper escapes the wildcards of LIKE patterns so that a search
// for "100%" matches the literal string.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// expression translates a predicate into a gorm clause for the column of
// the table.
func expression(table string, p backend.Predicate) (clause.Expression, error) {
	column := clause.Column{Table: table, Name: p.Column}

	switch p.Op {
	case backend.OpEq:
		if p.Value == nil {
			return clause.Expr{SQL: "? IS NULL", Vars: []any{column}}, nil
		}
		return clause.Eq{Column: column, Value: p.Value}, nil
	case backend.OpNeq:
		return clause.Neq{Column: column, Value: p.Value}, nil
	case backend.OpGt:
		return clause.Gt{Column: column, Value: p.Value}, nil
	case backend.OpGte:
		return clause.Gte{Column: column, Value: p.Value}, nil
	case backend.OpLt:
		return clause.Lt{Column: column, Value: p.Value}, nil
	case backend.OpLte:
		return clause.Lte{Column: column, Value: p.Value}, nil
	case backend.OpIsNull:
		return clause.Expr{SQL: "? IS NULL", Vars: []any{column}}, nil
	case backend.OpILike:
		s, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: ilike on %s needs a string, got %T", backend.ErrInvalidQuery, p.Column, p.Value)
		}
		return clause.Expr{
			SQL:  `fold(?) LIKE fold(?) ESCAPE '\'`,
			Vars: []any{column, "%" + likeEscaper.Replace(s) + "%"},
		}, nil
	case backend.OpIn:
		v := reflect.ValueOf(p.Value)
		if v.Kind() != reflect.Slice {
			return nil, fmt.Errorf("%w: in on %s needs a slice, got %T", backend.ErrInvalidQuery, p.Column, p.Value)
		}

		values := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			values = append(values, v.Index(i).Interface())
		}
		return clause.IN{Column: column, Values: values}, nil
	}

	return nil, fmt.Errorf("%w: unknown operator %q", backend.ErrInvalidQuery, p.Op)
}

// scope translates the predicates, orderings and the limit of the query.
// Columns are checked against the schema of the table.
func (t *table[T]) scope(q backend.Query) (func(*gorm.DB) *gorm.DB, error) {
	exprs := make([]clause.Expression, 0, len(q.Predicates))
	for _, p := range q.Predicates {
		if !t.hasColumn(p.Column) {
			return nil, fmt.Errorf("%w: %s has no column %q", backend.ErrInvalidQuery, t.name, p.Column)
		}

		expr, err := expression(t.name, p)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	orders := make([]clause.OrderByColumn, 0, len(q.Orders))
	for _, o := range q.Orders {
		if !t.hasColumn(o.Column) {
			return nil, fmt.Errorf("%w: cannot order %s by unknown column %q", backend.ErrInvalidQuery, t.name, o.Column)
		}
		orders = append(orders, clause.OrderByColumn{Column: clause.Column{Table: t.name, Name: o.Column}, Desc: o.Descending})
	}

	preloads := make([]string, 0, len(q.Joins))
	for _, j := range q.Joins {
		field, ok := t.relations[j]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no relation %q", backend.ErrInvalidQuery, t.name, j)
		}
		preloads = append(preloads, field)
	}

	return func(db *gorm.DB) *gorm.DB {
		if len(exprs) > 0 {
			db = db.Clauses(clause.Where{Exprs: exprs})
		}

		for _, o := range orders {
			db = db.Order(o)
		}

		for _, p := range preloads {
			db = db.Preload(p)
		}

		if q.Limit > 0 {
			db = db.Limit(q.Limit)
		}

		return db
	}, nil
}
