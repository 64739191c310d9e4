package pipeline

import (
	"strings"

	"sentiment-lab/internal/table"
)

// ColumnMissing counts empty cells in one raw column.
type ColumnMissing struct {
	Column  string
	Missing int
}

// TableQuality describes a raw input table before normalization.
type TableQuality struct {
	Table         string
	Rows          int
	Columns       int
	Missing       []ColumnMissing // header order
	DuplicateRows int             // rows identical to an earlier row
}

// MissingTotal sums empty cells over all columns.
func (q TableQuality) MissingTotal() int {
	n := 0
	for _, m := range q.Missing {
		n += m.Missing
	}
	return n
}

// QualityReport profiles a raw table. A nil table reports zero rows.
func QualityReport(name string, t *table.Table) TableQuality {
	q := TableQuality{Table: name}
	if t == nil {
		return q
	}
	q.Rows = t.Len()
	q.Columns = len(t.Columns)
	q.Missing = make([]ColumnMissing, len(t.Columns))
	for j, c := range t.Columns {
		q.Missing[j].Column = c
	}

	seen := make(map[string]struct{}, t.Len())
	for i := range t.Rows {
		cells := make([]string, len(t.Columns))
		for j := range t.Columns {
			cells[j] = t.Cell(i, j)
			if cells[j] == "" {
				q.Missing[j].Missing++
			}
		}
		key := strings.Join(cells, "\x1f")
		if _, dup := seen[key]; dup {
			q.DuplicateRows++
			continue
		}
		seen[key] = struct{}{}
	}
	return q
}
