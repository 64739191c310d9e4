package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sentiment-lab/internal/table"
)

func TestQualityReport(t *testing.T) {
	tbl := table.New([]string{"a", "b"}, [][]string{
		{"1", "x"},
		{"1", "x"},
		{"", "y"},
		{"2"}, // ragged row, b missing
	})

	q := QualityReport("trades", tbl)
	assert.Equal(t, "trades", q.Table)
	assert.Equal(t, 4, q.Rows)
	assert.Equal(t, 2, q.Columns)
	assert.Equal(t, []ColumnMissing{{Column: "a", Missing: 1}, {Column: "b", Missing: 1}}, q.Missing)
	assert.Equal(t, 2, q.MissingTotal())
	assert.Equal(t, 1, q.DuplicateRows)
}

func TestQualityReport_Nil(t *testing.T) {
	q := QualityReport("sentiment", nil)
	assert.Equal(t, 0, q.Rows)
	assert.Empty(t, q.Missing)
}

func TestCheckSufficiency_Empty(t *testing.T) {
	res := CheckSufficiency(&Result{}, 3)
	assert.False(t, res.AllPass)
	assert.Len(t, res.Checks, 4)
	for _, c := range res.Checks {
		assert.False(t, c.Pass, c.Name)
	}
}
