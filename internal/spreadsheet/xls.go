package spreadsheet

import (
	"fmt"

	"github.com/shakinm/xlsReader/xls"
)

// readXLS reads a legacy BIFF workbook. Only the first sheet is consumed,
// same as the OOXML path.
func readXLS(path string) ([]map[string]any, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	rows := make([][]string, 0, sheet.GetNumberRows())
	for i := 0; i < sheet.GetNumberRows(); i++ {
		row, err := sheet.GetRow(i)
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", i, err)
		}
		cols := row.GetCols()
		cells := make([]string, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, col.GetString())
		}
		rows = append(rows, cells)
	}
	return flattenRows(rows), nil
}
