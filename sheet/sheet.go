// Package sheet loads expected page values from a spreadsheet.
package sheet

import (
	"fmt"

	"github.com/aluiziolira/titlecheck/models"
	"github.com/aluiziolira/titlecheck/parser"
	"github.com/xuri/excelize/v2"
)

// firstDataRow is the 1-based row where records start; row 1 is a header.
const firstDataRow = 2

// ReadExpected reads the active sheet of the workbook at path. Column A holds
// the reference URL, B the expected title and C the expected h1. Cells are
// trimmed and fully blank rows are ignored.
func ReadExpected(path string) ([]models.ExpectedRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()

	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return nil, fmt.Errorf("workbook %q has no active sheet", path)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	var records []models.ExpectedRecord
	for i := firstDataRow - 1; i < len(rows); i++ {
		row := rows[i]
		record := models.ExpectedRecord{
			Row:   i + 1,
			URL:   cell(row, 0),
			Title: cell(row, 1),
			H1:    cell(row, 2),
		}
		if record.URL == "" && record.Title == "" && record.H1 == "" {
			continue
		}
		if err := parser.ValidateRecord(&record); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return parser.Normalize(row[col])
}
