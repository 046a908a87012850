package report

import (
	"fmt"
	"os"
	"sync"

	"github.com/aluiziolira/titlecheck/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single report sheet.
const SheetName = "Sheet 1"

// XLSXWriter builds a workbook in memory and saves it on Close. The file is
// written in the OOXML format whatever extension filename carries.
type XLSXWriter struct {
	filename string
	book     *excelize.File
	nextRow  int
	mu       sync.Mutex
}

// NewXLSXWriter initialises a workbook and writes the header row.
func NewXLSXWriter(filename string) (*XLSXWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	book := excelize.NewFile()
	if err := book.SetSheetName(book.GetSheetName(0), SheetName); err != nil {
		book.Close()
		return nil, fmt.Errorf("name report sheet: %w", err)
	}

	xw := &XLSXWriter{
		filename: filename,
		book:     book,
		nextRow:  1,
	}
	if err := xw.writeRow(Header); err != nil {
		book.Close()
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}
	return xw, nil
}

// Write appends one row per discrepancy.
func (xw *XLSXWriter) Write(records []models.Discrepancy) error {
	xw.mu.Lock()
	defer xw.mu.Unlock()

	for _, record := range records {
		if err := xw.writeRow(Row(record)); err != nil {
			return fmt.Errorf("write xlsx record: %w", err)
		}
	}
	return nil
}

func (xw *XLSXWriter) writeRow(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, xw.nextRow)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := xw.book.SetSheetRow(SheetName, cell, &row); err != nil {
		return err
	}
	xw.nextRow++
	return nil
}

// Close saves the workbook to filename, replacing any existing file.
func (xw *XLSXWriter) Close() error {
	xw.mu.Lock()
	defer xw.mu.Unlock()

	defer xw.book.Close()

	f, err := os.Create(xw.filename)
	if err != nil {
		return fmt.Errorf("create xlsx file: %w", err)
	}
	if err := xw.book.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write xlsx file: %w", err)
	}
	return f.Close()
}

// Validate ensures the saved workbook has content.
func (xw *XLSXWriter) Validate() error {
	return validateFile("xlsx", xw.filename)
}
