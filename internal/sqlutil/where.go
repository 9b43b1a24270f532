package sqlutil

import (
	"fmt"
	"strings"
)

// Where accumulates AND-ed predicates and their bound values. Placeholders
// are numbered as predicates are added, so any subset of predicates yields a
// consistent parameter list.
type Where struct {
	clauses []string
	args    []any
}

// Add appends a predicate. Each %s verb in tmpl is replaced by the placeholder
// of the matching arg.
//
//	w.Add("salary >= %s", 1000)  // salary >= $1
//	w.Add("equity > 0")          // no bound value
func (w *Where) Add(tmpl string, args ...any) {
	placeholders := make([]any, len(args))
	for i, a := range args {
		w.args = append(w.args, a)
		placeholders[i] = Placeholder(len(w.args))
	}
	w.clauses = append(w.clauses, fmt.Sprintf(tmpl, placeholders...))
}

// SQL renders " WHERE p1 AND p2 ...", or "" when nothing was added.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// Args returns the bound values in placeholder order.
func (w *Where) Args() []any {
	return w.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
