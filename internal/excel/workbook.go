package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type Workbook struct {
	file     *excelize.File
	filepath string
}

// OpenWorkbook opens an existing Excel file
func OpenWorkbook(filepath string) (*Workbook, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	return &Workbook{
		file:     file,
		filepath: filepath,
	}, nil
}

// SheetNames returns all sheet names in the workbook
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether the workbook contains the named sheet
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.file.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

// Rows returns all rows from a sheet with cell values formatted per cell style
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

// RawRows returns all rows from a sheet with unformatted cell values.
// Date cells come back as their stored serial numbers.
func (w *Workbook) RawRows(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get raw rows: %v", err)
	}
	return rows, nil
}

// Headers returns all column headers (first row)
func (w *Workbook) Headers(sheet string) ([]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get first row: %v", err)
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	return rows[0], nil
}

// Uses1904Dates reports whether the workbook stores dates in the 1904 system
func (w *Workbook) Uses1904Dates() bool {
	props, err := w.file.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// Close closes the Excel file
func (w *Workbook) Close() error {
	return w.file.Close()
}
