package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Tanggal")
	f.SetCellValue("Sheet1", "B1", "Tema")
	f.SetCellValue("Sheet1", "A2", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	f.SetCellValue("Sheet1", "B2", "Tema Contoh")

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

func TestOpenWorkbook(t *testing.T) {
	wb, err := OpenWorkbook(writeTestWorkbook(t))
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	if !wb.HasSheet("Sheet1") {
		t.Error("Expected Sheet1 to exist")
	}
	if wb.HasSheet("Nope") {
		t.Error("HasSheet returned true for a missing sheet")
	}

	headers, err := wb.Headers("Sheet1")
	if err != nil {
		t.Fatalf("Headers failed: %v", err)
	}
	if len(headers) != 2 || headers[0] != "Tanggal" {
		t.Errorf("Unexpected headers: %v", headers)
	}
}

func TestRawRowsReturnSerials(t *testing.T) {
	wb, err := OpenWorkbook(writeTestWorkbook(t))
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	raw, err := wb.RawRows("Sheet1")
	if err != nil {
		t.Fatalf("RawRows failed: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("Expected 2 raw rows, got %d", len(raw))
	}
	// 2024-03-10 in the 1900 date system
	if raw[1][0] != "45361" {
		t.Errorf("Raw date cell = %q, expected serial 45361", raw[1][0])
	}
}

func TestUses1904DatesDefault(t *testing.T) {
	wb, err := OpenWorkbook(writeTestWorkbook(t))
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	if wb.Uses1904Dates() {
		t.Error("New workbook should use the 1900 date system")
	}
}

func TestOpenWorkbookMissing(t *testing.T) {
	if _, err := OpenWorkbook(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("Expected error for missing file")
	}
}
