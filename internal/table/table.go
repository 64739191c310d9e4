// Package table holds raw, loosely-typed tabular input as read from delimited
// text, spreadsheets or database tables. Every cell is kept as text; typing is
// the normalizer's job.
package table

import (
	"errors"
	"strings"
)

// ErrNoHeader is returned when a source has no header row.
var ErrNoHeader = errors.New("table has no header row")

// Table is a header row plus string cells. Rows may be shorter than the header;
// missing trailing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates a table, trimming whitespace around column names.
func New(columns []string, rows [][]string) *Table {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
	}
	return &Table{Columns: cols, Rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of the first column whose name equals name
// case-insensitively, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// ExactIndex returns the position of the first column named exactly name, or -1.
func (t *Table) ExactIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Column returns a copy of all cells in column col.
func (t *Table) Column(col int) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, col)
	}
	return out
}

// Clone returns a deep copy. Stages work on clones and never mutate caller tables.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]string, len(r))
		copy(row, r)
		rows[i] = row
	}
	return &Table{Columns: cols, Rows: rows}
}
