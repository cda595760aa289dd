package table

import (
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Table is an ordered set of named columns over rows of cells.
// Column names are unique within a table.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty table with the given columns. Repeated names keep
// their first position.
func New(columns ...string) *Table {
	t := &Table{}
	for _, c := range columns {
		if _, ok := t.lookup(c); ok {
			continue
		}
		t.columns = append(t.columns, c)
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		t.index[c] = i
	}
}

func (t *Table) lookup(name string) (int, bool) {
	if t.index == nil {
		for i, c := range t.columns {
			if c == name {
				return i, true
			}
		}
		return -1, false
	}
	i, ok := t.index[name]
	return i, ok
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.lookup(name)
	return ok
}

// AppendRow adds a row. Short rows are padded with Null, long rows truncated.
func (t *Table) AppendRow(values ...Value) {
	row := make([]Value, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// Row returns a read-only view of row i.
func (t *Table) Row(i int) Row {
	return Row{t: t, i: i}
}

// Get returns the cell at row i in the named column, or Null when the
// column does not exist.
func (t *Table) Get(i int, column string) Value {
	j, ok := t.lookup(column)
	if !ok {
		return Null
	}
	return t.rows[i][j]
}

// Column returns a copy of the named column's cells. A missing column
// yields a slice of Null.
func (t *Table) Column(name string) []Value {
	out := make([]Value, len(t.rows))
	j, ok := t.lookup(name)
	if !ok {
		return out
	}
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.columns...)
	c.rows = make([][]Value, len(t.rows))
	for i, r := range t.rows {
		c.rows[i] = slices.Clone(r)
	}
	return c
}

// FromRows builds a table over header and rows. Repeated names resolve the
// way Rename does: the later column's cells win and the name keeps the
// position of its first occurrence. Short rows are padded with Null.
func FromRows(header []string, rows [][]Value) *Table {
	var names []string
	var from []int
	at := map[string]int{}
	for i, c := range header {
		if pos, ok := at[c]; ok {
			from[pos] = i
			continue
		}
		at[c] = len(names)
		names = append(names, c)
		from = append(from, i)
	}

	out := New(names...)
	out.rows = make([][]Value, len(rows))
	for i, r := range rows {
		row := make([]Value, len(names))
		for j, src := range from {
			if src < len(r) {
				row[j] = r[src]
			}
		}
		out.rows[i] = row
	}
	return out
}

// Rename maps every column name through fn. When two columns end up with
// the same name the later column's cells win and the name keeps the
// position of its first occurrence.
func (t *Table) Rename(fn func(string) string) *Table {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = fn(c)
	}
	return FromRows(names, t.rows)
}

// EnsureColumns returns a copy with every named column present; missing
// columns are appended and filled with Null.
func (t *Table) EnsureColumns(names ...string) *Table {
	out := t.Clone()
	added := 0
	for _, n := range names {
		if out.Has(n) {
			continue
		}
		out.columns = append(out.columns, n)
		out.index[n] = len(out.columns) - 1
		added++
	}
	if added > 0 {
		for i, r := range out.rows {
			out.rows[i] = append(r, make([]Value, added)...)
		}
	}
	return out
}

// Apply returns a copy with fn applied to every cell of the named column.
// The column is created first when absent.
func (t *Table) Apply(column string, fn func(Value) Value) *Table {
	out := t.EnsureColumns(column)
	j, _ := out.lookup(column)
	for _, r := range out.rows {
		r[j] = fn(r[j])
	}
	return out
}

// Filter returns the rows for which keep reports true, in order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.columns...)
	for i, r := range t.rows {
		if keep(Row{t: t, i: i}) {
			out.rows = append(out.rows, slices.Clone(r))
		}
	}
	return out
}

// DropMissing removes rows with a Null in any of the named columns.
// A named column the table lacks counts as Null for every row.
func (t *Table) DropMissing(columns ...string) *Table {
	return t.Filter(func(r Row) bool {
		for _, c := range columns {
			if r.Get(c).IsNull() {
				return false
			}
		}
		return true
	})
}

// DedupLast keeps only the last row for each distinct key over the named
// columns. Surviving rows keep their relative input order.
func (t *Table) DedupLast(columns ...string) *Table {
	last := make(map[string]int, len(t.rows))
	for i := range t.rows {
		last[t.rowKey(i, columns)] = i
	}
	out := New(t.columns...)
	for i, r := range t.rows {
		if last[t.rowKey(i, columns)] == i {
			out.rows = append(out.rows, slices.Clone(r))
		}
	}
	return out
}

// SortStable returns the rows ordered by less, keeping input order for
// rows that compare equal.
func (t *Table) SortStable(less func(a, b Row) bool) *Table {
	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return less(Row{t: t, i: order[a]}, Row{t: t, i: order[b]})
	})
	out := New(t.columns...)
	out.rows = make([][]Value, len(order))
	for i, src := range order {
		out.rows[i] = slices.Clone(t.rows[src])
	}
	return out
}

// Select returns a table holding only the named columns, in that order.
// Names the table lacks become all-Null columns.
func (t *Table) Select(columns ...string) *Table {
	out := New(columns...)
	out.rows = make([][]Value, len(t.rows))
	for i := range t.rows {
		row := make([]Value, len(out.columns))
		for j, c := range out.columns {
			row[j] = t.Get(i, c)
		}
		out.rows[i] = row
	}
	return out
}

// Records renders every row in canonical text form.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rec := make([]string, len(r))
		for j, v := range r {
			rec[j] = v.String()
		}
		out[i] = rec
	}
	return out
}

// MissingCount returns the number of Null cells.
func (t *Table) MissingCount() int {
	n := 0
	for _, r := range t.rows {
		for _, v := range r {
			if v.IsNull() {
				n++
			}
		}
	}
	return n
}

// DuplicateCount returns the number of rows identical, cell for cell, to
// an earlier row.
func (t *Table) DuplicateCount() int {
	seen := make(map[string]struct{}, len(t.rows))
	dups := 0
	for i := range t.rows {
		k := t.rowKey(i, t.columns)
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}

func (t *Table) rowKey(i int, columns []string) string {
	var b strings.Builder
	for _, c := range columns {
		k := t.Get(i, c).key()
		b.WriteString(strconv.Itoa(len(k)))
		b.WriteByte(':')
		b.WriteString(k)
	}
	return b.String()
}

// Row is a read-only view of one table row.
type Row struct {
	t *Table
	i int
}

// Index returns the row position within its table.
func (r Row) Index() int { return r.i }

// Get returns the cell in the named column.
func (r Row) Get(column string) Value {
	return r.t.Get(r.i, column)
}
