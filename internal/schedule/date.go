package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the text forms a date cell may take when it is not stored
// as a serial number. Day-first forms match the schedule's locale.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2/1/06",
}

// ParseDate parses a YYYY-MM-DD command line argument.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// Serial converts a calendar date to its Excel serial day number.
//
// The 1900 system counts from a base of 1899-12-31 and carries Excel's
// historical leap-year bug: 1900 is treated as a leap year, so every date
// from 1900-03-01 onward is shifted by one. The 1904 system counts serial 0
// as 1904-01-01.
func Serial(d time.Time, use1904 bool) int {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if use1904 {
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		return int(d.Sub(base).Hours() / 24)
	}
	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	serial := int(d.Sub(base).Hours() / 24)
	if !d.Before(time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)) {
		serial++
	}
	return serial
}

// cellMatchesDate reports whether a raw date-column cell refers to the target
// date, comparing numerically for serial cells and by parsed date for text
// cells.
func cellMatchesDate(raw string, targetSerial int, target time.Time) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return int(f) == targetSerial
	}

	for _, layout := range dateLayouts {
		d, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if d.Year() == target.Year() && d.Month() == target.Month() && d.Day() == target.Day() {
			return true
		}
	}
	return false
}
