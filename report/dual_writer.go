package report

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aluiziolira/titlecheck/models"
)

// DualWriter outputs the workbook and a JSONL sidecar together.
type DualWriter struct {
	xlsxWriter *XLSXWriter
	jsonWriter *JSONWriter
	mu         sync.Mutex
}

// NewDualWriter creates a writer for both the workbook and JSON output.
func NewDualWriter(xlsxFilename, jsonFilename string) (*DualWriter, error) {
	xlsxWriter, err := NewXLSXWriter(xlsxFilename)
	if err != nil {
		return nil, fmt.Errorf("create xlsx writer: %w", err)
	}

	jsonWriter, err := NewJSONWriter(jsonFilename)
	if err != nil {
		xlsxWriter.book.Close()
		return nil, fmt.Errorf("create json writer: %w", err)
	}

	return &DualWriter{
		xlsxWriter: xlsxWriter,
		jsonWriter: jsonWriter,
	}, nil
}

// Write writes discrepancies to both outputs.
func (dw *DualWriter) Write(records []models.Discrepancy) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if err := dw.xlsxWriter.Write(records); err != nil {
		return fmt.Errorf("xlsx write failed: %w", err)
	}
	if err := dw.jsonWriter.Write(records); err != nil {
		return fmt.Errorf("json write failed: %w", err)
	}
	return nil
}

// Close closes both writers.
func (dw *DualWriter) Close() error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	var errs []error
	if err := dw.xlsxWriter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("xlsx close failed: %w", err))
	}
	if err := dw.jsonWriter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("json close failed: %w", err))
	}
	return errors.Join(errs...)
}

// Validate validates both output files.
func (dw *DualWriter) Validate() error {
	var errs []error
	if err := dw.xlsxWriter.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("xlsx validation failed: %w", err))
	}
	if err := dw.jsonWriter.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("json validation failed: %w", err))
	}
	return errors.Join(errs...)
}
