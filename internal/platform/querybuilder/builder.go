// Package querybuilder renders the handful of Postgres statements the
// repositories need with numbered ($n) placeholders.
package querybuilder

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// binder collects positional arguments while a statement is written.
type binder struct {
	sql  strings.Builder
	args []any
}

func (b *binder) bind(value any) {
	b.args = append(b.args, value)
	b.sql.WriteByte('$')
	b.sql.WriteString(strconv.Itoa(len(b.args)))
}

type Condition interface {
	render(b *binder)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) render(b *binder) {
	b.sql.WriteString(c.column)
	b.sql.WriteString(" = ")
	b.bind(c.value)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

// Where conditions are joined with AND.
func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, terms...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	s.limit = limit
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(s.columns) == 0:
		return "", nil, crerr.New("select columns are required")
	case strings.TrimSpace(s.table) == "":
		return "", nil, crerr.New("select table is required")
	}

	var b binder
	b.sql.WriteString("SELECT ")
	b.sql.WriteString(strings.Join(s.columns, ", "))
	b.sql.WriteString(" FROM ")
	b.sql.WriteString(s.table)
	for i, cond := range s.where {
		if i == 0 {
			b.sql.WriteString(" WHERE ")
		} else {
			b.sql.WriteString(" AND ")
		}
		cond.render(&b)
	}
	if len(s.orderBy) > 0 {
		b.sql.WriteString(" ORDER BY ")
		b.sql.WriteString(strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		b.sql.WriteString(" LIMIT ")
		b.sql.WriteString(strconv.Itoa(s.limit))
	}
	return b.sql.String(), b.args, nil
}

// insertRows renders INSERT INTO table (cols) VALUES (...), (...) followed by
// an optional literal suffix such as an ON CONFLICT clause.
func insertRows(table string, columns []string, rows [][]any, suffix string) (string, []any, error) {
	switch {
	case strings.TrimSpace(table) == "":
		return "", nil, crerr.New("insert table is required")
	case len(columns) == 0:
		return "", nil, crerr.New("insert columns are required")
	case len(rows) == 0:
		return "", nil, crerr.New("insert values are required")
	}

	var b binder
	b.args = make([]any, 0, len(rows)*len(columns))
	b.sql.WriteString("INSERT INTO ")
	b.sql.WriteString(table)
	b.sql.WriteString(" (")
	b.sql.WriteString(strings.Join(columns, ", "))
	b.sql.WriteString(") VALUES ")
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, crerr.Newf("insert row %d has %d values, expected %d", i, len(row), len(columns))
		}
		if i > 0 {
			b.sql.WriteString(", ")
		}
		b.sql.WriteByte('(')
		for j, value := range row {
			if j > 0 {
				b.sql.WriteString(", ")
			}
			b.bind(value)
		}
		b.sql.WriteByte(')')
	}
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		b.sql.WriteByte(' ')
		b.sql.WriteString(suffix)
	}
	return b.sql.String(), b.args, nil
}
