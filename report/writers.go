package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/aluiziolira/titlecheck/models"
)

// CSVWriter writes report rows to CSV.
type CSVWriter struct {
	filename string
	file     *os.File
	writer   *csv.Writer
	mu       sync.Mutex
}

// NewCSVWriter initialises a CSV writer and writes the header row.
func NewCSVWriter(filename string) (*CSVWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush csv header: %w", err)
	}

	return &CSVWriter{
		filename: filename,
		file:     f,
		writer:   writer,
	}, nil
}

// Write appends discrepancies to the CSV output.
func (cw *CSVWriter) Write(records []models.Discrepancy) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	for _, record := range records {
		if err := cw.writer.Write(Row(record)); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

// Close flushes and closes the file handle.
func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv writer: %w", err)
	}
	return cw.file.Close()
}

// Validate ensures the file has content.
func (cw *CSVWriter) Validate() error {
	return validateFile("csv", cw.filename)
}

// JSONWriter writes newline-delimited JSON records.
type JSONWriter struct {
	filename string
	file     *os.File
	writer   *bufio.Writer
	encoder  *json.Encoder
	mu       sync.Mutex
}

// NewJSONWriter initialises the JSON writer.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create json file: %w", err)
	}

	buffer := bufio.NewWriter(f)
	return &JSONWriter{
		filename: filename,
		file:     f,
		writer:   buffer,
		encoder:  json.NewEncoder(buffer),
	}, nil
}

// Write appends discrepancies in JSONL format.
func (jw *JSONWriter) Write(records []models.Discrepancy) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	for _, record := range records {
		if err := jw.encoder.Encode(record); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}

	if err := jw.writer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}

	return nil
}

// Close flushes buffers and closes the underlying file.
func (jw *JSONWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if err := jw.writer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}
	return jw.file.Close()
}

// Validate only checks that the file exists; a clean run legitimately
// produces an empty JSONL file.
func (jw *JSONWriter) Validate() error {
	if _, err := os.Stat(jw.filename); err != nil {
		return fmt.Errorf("stat json file: %w", err)
	}
	return nil
}
