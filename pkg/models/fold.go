package models

import (
	"database/sql/driver"
	"fmt"

	go_sqlite "github.com/glebarez/go-sqlite"
	"golang.org/x/text/cases"
)

// FoldFunction is the name of the SQL function returning the Unicode case
// folded form of its text argument. SQLite's LOWER only folds ASCII.
const FoldFunction = "fold"

func init() {
	go_sqlite.MustRegisterDeterministicScalarFunction(FoldFunction, 1, fold)
}

// fold implements FoldFunction. NULL stays NULL.
func fold(_ *go_sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return Fold(v), nil
	case []byte:
		return Fold(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", FoldFunction, v)
	}
}

// Fold returns the case folded form of s, so that "Alimentação" and
// "ALIMENTAÇÃO" compare equal.
func Fold(s string) string {
	// A Caser keeps state and is not safe for concurrent use.
	return cases.Fold().String(s)
}
