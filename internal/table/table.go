// Package table holds the in-memory rectangular table that cleaning steps
// operate on: an ordered list of named columns and positionally aligned rows
// of string-typed cells. A Table is ephemeral: read from one input file,
// mutated by column replacement/addition, serialized, then discarded.
package table

import "fmt"

// Table is a rectangular snapshot of one input file.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New builds an empty table with the given header.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// ColumnIndex returns the index of the column with the exact given name, or
// -1 when absent. Name matching here is literal; fuzzy resolution lives in
// the alias resolver.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the values of column idx, in row order.
func (t *Table) Column(idx int) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// SetColumn overwrites column idx with values, which must align with Rows.
func (t *Table) SetColumn(idx int, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column length %d != row count %d", len(values), len(t.Rows))
	}
	for i := range t.Rows {
		t.Rows[i][idx] = values[i]
	}
	return nil
}

// AddColumn appends a derived column, which must align with Rows.
func (t *Table) AddColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column length %d != row count %d", len(values), len(t.Rows))
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// Filter keeps only the rows for which keep[i] is true and returns the
// number of rows removed. keep must align with Rows.
func (t *Table) Filter(keep []bool) int {
	if len(keep) != len(t.Rows) {
		return 0
	}
	kept := t.Rows[:0]
	removed := 0
	for i, row := range t.Rows {
		if keep[i] {
			kept = append(kept, row)
		} else {
			removed++
		}
	}
	t.Rows = kept
	return removed
}
