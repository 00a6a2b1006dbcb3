// Package schedule locates liturgy plan rows in the schedule workbook.
package schedule

import (
	"fmt"
	"time"

	"liturgi/internal/excel"
	"liturgi/internal/logger"
)

// Row is one schedule record: column header -> cell value.
type Row map[string]string

// Source identifies the schedule workbook, sheet, and date column.
type Source struct {
	Path       string
	Sheet      string
	DateColumn string
}

// Lookup returns the first schedule row whose date column matches the given
// date. Rows are scanned in sheet order; the scan stops at the first match.
func (s Source) Lookup(date time.Time) (Row, error) {
	wb, err := excel.OpenWorkbook(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSource, err)
	}
	defer wb.Close()

	if !wb.HasSheet(s.Sheet) {
		return nil, fmt.Errorf("%w: sheet %q not found in %s", ErrBadSource, s.Sheet, s.Path)
	}

	// Formatted rows carry the user-visible values; raw rows carry date
	// serials for matching.
	rows, err := wb.Rows(s.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSource, err)
	}
	rawRows, err := wb.RawRows(s.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSource, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrBadSource, s.Sheet)
	}

	headers := rows[0]
	dateIdx := -1
	for i, h := range headers {
		if h == s.DateColumn {
			dateIdx = i
			break
		}
	}
	if dateIdx == -1 {
		return nil, fmt.Errorf("%w: date column %q not found in sheet %q", ErrBadSource, s.DateColumn, s.Sheet)
	}

	targetSerial := Serial(date, wb.Uses1904Dates())
	logger.Debug("Looking up schedule row", "date", date.Format("2006-01-02"), "serial", targetSerial)

	for i := 1; i < len(rawRows); i++ {
		raw := rawRows[i]
		if dateIdx >= len(raw) {
			continue
		}
		if !cellMatchesDate(raw[dateIdx], targetSerial, date) {
			continue
		}

		values := raw
		if i < len(rows) {
			values = rows[i]
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			if h == "" {
				continue
			}
			if j < len(values) {
				row[h] = values[j]
			} else {
				row[h] = ""
			}
		}
		logger.Info("Matched schedule row", "date", date.Format("2006-01-02"), "row", i+1)
		return row, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrDateNotFound, date.Format("2006-01-02"))
}

// Headers returns the schedule sheet's column headers.
func (s Source) Headers() ([]string, error) {
	wb, err := excel.OpenWorkbook(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSource, err)
	}
	defer wb.Close()

	if !wb.HasSheet(s.Sheet) {
		return nil, fmt.Errorf("%w: sheet %q not found in %s", ErrBadSource, s.Sheet, s.Path)
	}
	return wb.Headers(s.Sheet)
}
