package parser

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"

	"github.com/yurifrl/invoicer/pkg/models"
)

func sampleWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	values := map[string]interface{}{
		"A1": "Jan 2024",
		"A2": "USD Rate", "B2": 1,
		"A3": "EUR Rate", "B3": 0.9,
		"A4": "Customer", "B4": "Status", "C4": "Total Price", "D4": "Item Price Currency", "E4": "Invoice Currency",
		"A5": "Acme", "B5": "Ready", "C5": 100, "D5": "USD", "E5": "EUR",
		"A6": "Globex", "C6": 250.5, "E6": "USD",
	}
	for cell, v := range values {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("Failed to set %s: %v", cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestProcessBytesXLSX(t *testing.T) {
	p := New(log.Default())
	grid, err := p.ProcessBytes(sampleWorkbook(t), "batch.xlsx")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}

	if len(grid) != 6 {
		t.Fatalf("Expected 6 rows, got %d", len(grid))
	}

	assertCell(t, grid, 0, 0, models.TextCell("Jan 2024"))
	assertCell(t, grid, 1, 0, models.TextCell("USD Rate"))
	assertCell(t, grid, 1, 1, models.NumberCell(1))
	assertCell(t, grid, 2, 1, models.NumberCell(0.9))
	assertCell(t, grid, 3, 4, models.TextCell("Invoice Currency"))
	assertCell(t, grid, 4, 2, models.NumberCell(100))
	assertCell(t, grid, 5, 1, models.Cell{})
	assertCell(t, grid, 5, 2, models.NumberCell(250.5))
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	if err := os.WriteFile(path, sampleWorkbook(t), 0o600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	grid, err := New(log.Default()).ProcessFile(path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(grid) != 6 {
		t.Errorf("Expected 6 rows, got %d", len(grid))
	}
}

func TestProcessBytesErrors(t *testing.T) {
	p := New(log.Default())

	if _, err := p.ProcessBytes([]byte("a;b"), "batch.csv"); !errors.Is(err, ErrUnknownFileType) {
		t.Errorf("Expected ErrUnknownFileType, got %v", err)
	}
	if _, err := p.ProcessBytes([]byte("not a zip"), "batch.xlsx"); err == nil {
		t.Error("Expected error for corrupt workbook")
	}
	if _, err := p.ProcessFile(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		filename string
		want     FileType
	}{
		{"batch.xlsx", XLSX},
		{"Batch.XLSX", XLSX},
		{"macro.xlsm", XLSX},
		{"legacy.xls", XLS},
		{"notes.txt", ""},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := detectType(tt.filename); got != tt.want {
			t.Errorf("detectType(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestProcessBytesXLS(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "batch.xls"))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	p := New(log.Default())
	grid, err := p.ProcessBytes(data, "batch.xls")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}

	if len(grid) != 7 {
		t.Fatalf("Expected 7 rows, got %d", len(grid))
	}

	// A1 holds serial 45292 in a custom "mmm yyyy" format.
	assertCell(t, grid, 0, 0, models.TextCell("2024-01-01T00:00:00Z"))
	assertCell(t, grid, 1, 0, models.TextCell("USD Rate"))
	assertCell(t, grid, 1, 1, models.NumberCell(1))
	assertCell(t, grid, 2, 1, models.NumberCell(0.9))
	assertCell(t, grid, 3, 1, models.TextCell("Cust No'"))
	assertCell(t, grid, 3, 7, models.TextCell("Booked"))
	assertCell(t, grid, 4, 0, models.TextCell("Acme"))
	assertCell(t, grid, 4, 1, models.NumberCell(1042))
	assertCell(t, grid, 4, 4, models.NumberCell(100))
	// H5 holds serial 45306 in the built-in "mmm-yy" format.
	assertCell(t, grid, 4, 7, models.NumberCell(2024.01))

	// Row 6 has no record in the sheet.
	if len(grid[5].Compact()) != 0 {
		t.Errorf("Expected empty row 5, got %+v", grid[5])
	}
	assertCell(t, grid, 6, 0, models.TextCell("Globex"))
	assertCell(t, grid, 6, 1, models.Cell{})
	assertCell(t, grid, 6, 2, models.TextCell("Draft"))
	assertCell(t, grid, 6, 4, models.NumberCell(10.5))
}

func TestProcessBytesXLSRejectsGarbage(t *testing.T) {
	p := New(log.New(io.Discard))
	if _, err := p.ProcessBytes([]byte("not a workbook at all"), "batch.xls"); err == nil {
		t.Error("Expected error for a non OLE2 file")
	}
}

func TestTextToCell(t *testing.T) {
	tests := []struct {
		input string
		want  models.Cell
	}{
		{"USD Rate", models.TextCell("USD Rate")},
		{"0.9", models.NumberCell(0.9)},
		{" 100 ", models.NumberCell(100)},
		{"", models.Cell{}},
		{"   ", models.Cell{}},
	}
	for _, tt := range tests {
		if got := textToCell(tt.input); got != tt.want {
			t.Errorf("textToCell(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func assertCell(t *testing.T, grid models.Grid, r, c int, want models.Cell) {
	t.Helper()
	got := grid[r].At(c)
	if got != want {
		t.Errorf("Cell (%d,%d) mismatch:\nExpected: %+v\nGot: %+v", r, c, want, got)
	}
}
