package schedule

import "errors"

// ErrDateNotFound indicates no schedule row matches the requested date.
var ErrDateNotFound = errors.New("date not found in schedule")

// ErrBadSource indicates the schedule workbook is missing, unreadable, or
// lacks the expected sheet or date column.
var ErrBadSource = errors.New("bad schedule source")
