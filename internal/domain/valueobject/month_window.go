// Package valueobject contains domain value objects for the life energy review engine.
package valueobject

import (
	"fmt"
	"strconv"
	"time"
)

// MonthCodeLength is the length of a canonical "MMYYYY" month code.
const MonthCodeLength = 6

// MonthWindow is the inclusive calendar window of one month.
// Start and End are midnight UTC of the first and last day.
type MonthWindow struct {
	Start time.Time
	End   time.Time
	Code  string
}

// NewMonthWindow returns the window of the month containing date.
// The calendar day is read in date's own location, so a late-evening local
// timestamp never slides into the neighbouring month.
func NewMonthWindow(date time.Time) MonthWindow {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return MonthWindow{
		Start: start,
		End:   end,
		Code:  FormatMonthCode(start),
	}
}

// ParseMonthCode parses a "MMYYYY" string into its month window.
func ParseMonthCode(code string) (MonthWindow, error) {
	if len(code) != MonthCodeLength {
		return MonthWindow{}, fmt.Errorf("month code %q must have %d digits", code, MonthCodeLength)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return MonthWindow{}, fmt.Errorf("month code %q must be numeric", code)
		}
	}

	month, _ := strconv.Atoi(code[:2])
	year, _ := strconv.Atoi(code[2:])
	if month < 1 || month > 12 {
		return MonthWindow{}, fmt.Errorf("month code %q has invalid month %d", code, month)
	}
	if year < 1 {
		return MonthWindow{}, fmt.Errorf("month code %q has invalid year %d", code, year)
	}

	return NewMonthWindow(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)), nil
}

// FormatMonthCode formats the month containing date as "MMYYYY".
func FormatMonthCode(date time.Time) string {
	return fmt.Sprintf("%02d%04d", int(date.Month()), date.Year())
}
