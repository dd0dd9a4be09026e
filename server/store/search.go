package store

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsAny matches rows where any of the columns contains keyword as a literal substring.
// LIKE wildcards in keyword match only themselves.
func ContainsAny(keyword string, columns ...string) exp.Expression {
	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	matches := make([]exp.Expression, 0, len(columns))
	for _, column := range columns {
		matches = append(matches, goqu.L(`? LIKE ? ESCAPE '\'`, goqu.C(column), pattern))
	}
	return goqu.Or(matches...)
}
