package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV_HeaderAndRows(t *testing.T) {
	in := "\ufeff Date ,classification\n2024-01-01,Fear\n\n2024-01-02,Greed\n"

	tbl, err := ReadCSV(strings.NewReader(in), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "classification"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len(), "blank lines are skipped")
	assert.Equal(t, "Greed", tbl.Cell(1, 1))
}

func TestReadCSV_RaggedRows(t *testing.T) {
	in := "a,b,c\n1,2\n4,5,6\n"

	tbl, err := ReadCSV(strings.NewReader(in), ',')
	require.NoError(t, err)

	assert.Equal(t, "", tbl.Cell(0, 2), "short row reads as empty")
	assert.Equal(t, "6", tbl.Cell(1, 2))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), ',')
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestReadFile_TSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.tsv")
	require.NoError(t, os.WriteFile(path, []byte("account\tpnl\nA\t1.5\n"), 0644))

	tbl, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"account", "pnl"}, tbl.Columns)
	assert.Equal(t, "1.5", tbl.Cell(0, 1))
}

func TestReadFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentiment.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Date", "Classification"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"2024-01-01", "Fear"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2024-01-02", "Greed"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Classification"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Greed", tbl.Cell(1, 1))
}

func TestTable_IndexIsCaseInsensitive(t *testing.T) {
	tbl := New([]string{"Account", "closedPnL"}, nil)

	assert.Equal(t, 1, tbl.Index("CLOSEDPNL"))
	assert.Equal(t, -1, tbl.ExactIndex("closedpnl"))
	assert.Equal(t, -1, tbl.Index("size"))
}

func TestTable_CloneIsIndependent(t *testing.T) {
	orig := New([]string{"a"}, [][]string{{"1"}})

	c := orig.Clone()
	c.Columns[0] = "b"
	c.Rows[0][0] = "2"

	assert.Equal(t, "a", orig.Columns[0])
	assert.Equal(t, "1", orig.Rows[0][0])
	assert.Equal(t, "b", c.Columns[0])
}
