// Package sqlutil holds small helpers for assembling parameterized PostgreSQL
// statements.
package sqlutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoData is returned when a partial update carries no fields to set.
var ErrNoData = errors.New("no data")

// Field is one column assignment of a partial update, named by its external
// (camelCase) name.
type Field struct {
	Name  string
	Value any
}

// Column resolves an external field name to its column name. Names missing
// from columns are returned unchanged.
func Column(name string, columns map[string]string) string {
	if col, ok := columns[name]; ok {
		return col
	}
	return name
}

// QuoteIdent quotes a SQL identifier, doubling any embedded double quote.
func QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Placeholder renders the positional parameter $n.
func Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// BuildSetClause turns fields into the body of an UPDATE ... SET clause and
// the matching ordered parameter list.
//
//	BuildSetClause([]Field{{"numEmployees", 5}, {"logoUrl", "awesome"}},
//	    map[string]string{"numEmployees": "num_employees", "logoUrl": "logo_url"})
//	// `"num_employees"=$1, "logo_url"=$2`, []any{5, "awesome"}
//
// Placeholders are numbered from 1 in the order of fields, so callers append
// their own WHERE parameters after len(values).
func BuildSetClause(fields []Field, columns map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, ErrNoData
	}

	cols := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for i, f := range fields {
		cols = append(cols, QuoteIdent(Column(f.Name, columns))+"="+Placeholder(i+1))
		values = append(values, f.Value)
	}

	return strings.Join(cols, ", "), values, nil
}
