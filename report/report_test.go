package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aluiziolira/titlecheck/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecords() []models.Discrepancy {
	return []models.Discrepancy{
		{URL: "/about", Title: &models.FieldDiff{Expected: "About Us", Actual: "About us"}},
		{URL: "/contact", H1: &models.FieldDiff{Expected: "Contact", Actual: ""}},
		{
			URL:   "/both",
			Title: &models.FieldDiff{Expected: "A", Actual: "B"},
			H1:    &models.FieldDiff{Expected: "C", Actual: "D"},
		},
		{URL: "/old", Error: "http: 404"},
	}
}

func expectedRows() [][]string {
	return [][]string{
		Header,
		{"/about", "About Us", "About us", "", "", ""},
		{"/contact", "", "", "Contact", "", ""},
		{"/both", "A", "B", "C", "D", ""},
		{"/old", "", "", "", "", "http: 404"},
	}
}

func padRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, len(Header))
		copy(padded, row)
		out[i] = padded
	}
	return out
}

func TestRow(t *testing.T) {
	for i, record := range sampleRecords() {
		assert.Equal(t, expectedRows()[i+1], Row(record))
	}
}

func TestXLSXWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xls")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	writer, err := NewXLSXWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Write(sampleRecords()))
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Validate())

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{SheetName}, book.GetSheetList())
	rows, err := book.GetRows(SheetName)
	require.NoError(t, err)

	if diff := cmp.Diff(expectedRows(), padRows(rows)); diff != "" {
		t.Errorf("xlsx rows mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSXWriterHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xls")

	writer, err := NewXLSXWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Write(nil))
	require.NoError(t, writer.Close())

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header}, rows)
}

func TestCSVWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	writer, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("create csv writer: %v", err)
	}
	if err := writer.Write(sampleRecords()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if diff := cmp.Diff(expectedRows(), records); diff != "" {
		t.Errorf("csv rows mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.jsonl")

	writer, err := NewJSONWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Write(sampleRecords()))
	require.NoError(t, writer.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []models.Discrepancy
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var decoded models.Discrepancy
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &decoded))
		got = append(got, decoded)
	}
	require.NoError(t, scanner.Err())

	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Errorf("json records mismatch (-want +got):\n%s", diff)
	}
}

func TestDualWriterWrite(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "report.xls")
	jsonPath := filepath.Join(dir, "report.json")

	writer, err := NewDualWriter(xlsxPath, jsonPath)
	require.NoError(t, err)
	require.NoError(t, writer.Write(sampleRecords()))
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Validate())

	if info, err := os.Stat(xlsxPath); err != nil || info.Size() == 0 {
		t.Fatalf("xlsx file missing or empty")
	}
	if info, err := os.Stat(jsonPath); err != nil || info.Size() == 0 {
		t.Fatalf("json file missing or empty")
	}
}
