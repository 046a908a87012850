// Package report writes discrepancy rows to tabular outputs.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aluiziolira/titlecheck/models"
)

// Header is the fixed column order of every tabular report.
var Header = []string{
	"URL",
	"TITLE (Expected)",
	"TITLE (Actual)",
	"H1 (Expected)",
	"H1 (Actual)",
	"ERROR",
}

// OutputWriter defines the interface for report output.
type OutputWriter interface {
	Write(records []models.Discrepancy) error
	Close() error
	Validate() error
}

// Row maps a discrepancy onto the Header columns. Fields that matched are
// left blank.
func Row(d models.Discrepancy) []string {
	row := make([]string, len(Header))
	row[0] = d.URL
	if d.Title != nil {
		row[1] = d.Title.Expected
		row[2] = d.Title.Actual
	}
	if d.H1 != nil {
		row[3] = d.H1.Expected
		row[4] = d.H1.Actual
	}
	row[5] = d.Error
	return row
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

func validateFile(kind, filename string) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("stat %s file: %w", kind, err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("%s file is empty", kind)
	}
	return nil
}
