package spreadsheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Read flattens the first sheet of a workbook into one map per data row,
// keyed by the header row. Modern OOXML workbooks (.xlsx) and legacy BIFF
// ones (.xls) are both handled. Cells come back in their string form;
// downstream normalization handles numeric id coercion.
func Read(path string) ([]map[string]any, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return readXLS(path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return flattenFile(f)
}

// ReadFrom is Read for an already-open OOXML stream (e.g. an uploaded file).
func ReadFrom(r io.Reader) ([]map[string]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return flattenFile(f)
}

func flattenFile(f *excelize.File) ([]map[string]any, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return flattenRows(rows), nil
}

// flattenRows turns a header row plus data rows into header-keyed records.
// Columns with an empty header are dropped; cells missing from short rows
// come back as empty strings.
func flattenRows(rows [][]string) []map[string]any {
	if len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	records := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]any, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records
}
