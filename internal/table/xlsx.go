package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a table from a spreadsheet. The first row of the sheet is the
// header. An empty sheet name selects the first sheet that has a header row.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	names := []string{sheet}
	if sheet == "" {
		names = f.GetSheetList()
	}

	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			if sheet != "" {
				return nil, fmt.Errorf("read sheet %q: %w", name, err)
			}
			continue
		}
		if len(rows) == 0 || isBlank(rows[0]) {
			continue
		}

		var data [][]string
		for _, r := range rows[1:] {
			if isBlank(r) {
				continue
			}
			data = append(data, r)
		}
		return New(rows[0], data), nil
	}

	return nil, ErrNoHeader
}
