package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and positional ($N) arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes raw SQL replacing each ? with the next bound argument.
func (w *sqlWriter) expr(raw string, exprArgs []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && next < len(exprArgs) {
			w.bind(exprArgs[next])
			next++
			continue
		}
		w.buf.WriteByte(raw[i])
	}
}

// Condition renders one boolean SQL term.
type Condition func(w *sqlWriter)

func compare(column, op string, value any) Condition {
	return func(w *sqlWriter) {
		w.buf.WriteString(column)
		w.buf.WriteString(op)
		w.bind(value)
	}
}

func Eq(column string, value any) Condition  { return compare(column, " = ", value) }
func Ne(column string, value any) Condition  { return compare(column, " <> ", value) }
func Gt(column string, value any) Condition  { return compare(column, " > ", value) }
func Gte(column string, value any) Condition { return compare(column, " >= ", value) }
func Lt(column string, value any) Condition  { return compare(column, " < ", value) }
func Lte(column string, value any) Condition { return compare(column, " <= ", value) }

// ILike matches a case-insensitive substring.
func ILike(column, needle string) Condition {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(needle)
	return compare(column, " ILIKE ", "%"+escaped+"%")
}

// In renders column IN (...); an empty list matches nothing.
func In[T any](column string, values []T) Condition {
	return func(w *sqlWriter) {
		if len(values) == 0 {
			w.buf.WriteString("1=0")
			return
		}
		w.buf.WriteString(column)
		w.buf.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				w.buf.WriteString(", ")
			}
			w.bind(v)
		}
		w.buf.WriteString(")")
	}
}

func IsNull(column string) Condition {
	return func(w *sqlWriter) { w.buf.WriteString(column + " IS NULL") }
}

func NotNull(column string) Condition {
	return func(w *sqlWriter) { w.buf.WriteString(column + " IS NOT NULL") }
}

func Expr(raw string, args ...any) Condition {
	return func(w *sqlWriter) { w.expr(raw, args) }
}

// Or groups conditions with OR inside parentheses.
func Or(conditions ...Condition) Condition {
	return func(w *sqlWriter) {
		w.buf.WriteString("(")
		for i, c := range conditions {
			if i > 0 {
				w.buf.WriteString(" OR ")
			}
			c(w)
		}
		w.buf.WriteString(")")
	}
}

func writeWhere(w *sqlWriter, conditions []Condition) {
	first := true
	for _, c := range conditions {
		if c == nil {
			continue
		}
		if first {
			w.buf.WriteString(" WHERE ")
			first = false
		} else {
			w.buf.WriteString(" AND ")
		}
		c(w)
	}
}

type SelectBuilder struct {
	columns  []string
	table    string
	where    []Condition
	groupBy  []string
	orderBy  []string
	limit    int
	offset   int
	distinct bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.distinct = true
	return b
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Where appends conditions joined by AND; nil conditions are ignored so
// optional filters can be passed inline.
func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

// Page applies LIMIT/OFFSET for a 1-based page.
func (b *SelectBuilder) Page(page, perPage int) *SelectBuilder {
	if page < 1 {
		page = 1
	}
	b.limit = perPage
	b.offset = (page - 1) * perPage
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &sqlWriter{}
	w.buf.WriteString("SELECT ")
	if b.distinct {
		w.buf.WriteString("DISTINCT ")
	}
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)
	writeWhere(w, b.where)
	if len(b.groupBy) > 0 {
		w.buf.WriteString(" GROUP BY " + strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		w.buf.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.buf.WriteString(" OFFSET " + strconv.Itoa(b.offset))
	}
	return w.buf.String(), w.args, nil
}

// CountSQL renders SELECT COUNT(*) with the same table and filters.
func (b *SelectBuilder) CountSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}
	w := &sqlWriter{}
	w.buf.WriteString("SELECT COUNT(*) FROM ")
	w.buf.WriteString(b.table)
	writeWhere(w, b.where)
	return w.buf.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
	suffixA []any
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim after VALUES (ON CONFLICT, RETURNING ...).
func (b *InsertBuilder) Suffix(raw string, args ...any) *InsertBuilder {
	b.suffix = strings.TrimSpace(raw)
	b.suffixA = args
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := &sqlWriter{}
	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.buf.WriteString(", ")
			}
			w.bind(value)
		}
		w.buf.WriteString(")")
	}
	if b.suffix != "" {
		w.buf.WriteString(" ")
		w.expr(b.suffix, b.suffixA)
	}
	return w.buf.String(), w.args, nil
}

type assignment struct {
	column string
	raw    string
	args   []any
	value  any
	isExpr bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) SetExpr(column, raw string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: raw, args: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	w := &sqlWriter{}
	w.buf.WriteString("UPDATE ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(s.column)
		w.buf.WriteString(" = ")
		if s.isExpr {
			w.expr(s.raw, s.args)
			continue
		}
		w.bind(s.value)
	}
	writeWhere(w, b.where)
	return w.buf.String(), w.args, nil
}

// ExcludedSet renders "a = EXCLUDED.a, b = EXCLUDED.b" for ON CONFLICT updates.
func ExcludedSet(columns ...string) string {
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, c+" = EXCLUDED."+c)
	}
	return strings.Join(parts, ",\n    ")
}
