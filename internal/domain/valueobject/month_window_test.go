package valueobject

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestNewMonthWindow(t *testing.T) {
	tests := []struct {
		name          string
		date          time.Time
		expectedStart time.Time
		expectedEnd   time.Time
		expectedCode  string
	}{
		{
			name:          "end of month",
			date:          day(2024, time.March, 31),
			expectedStart: day(2024, time.March, 1),
			expectedEnd:   day(2024, time.March, 31),
			expectedCode:  "032024",
		},
		{
			name:          "first of month",
			date:          day(2024, time.March, 1),
			expectedStart: day(2024, time.March, 1),
			expectedEnd:   day(2024, time.March, 31),
			expectedCode:  "032024",
		},
		{
			name:          "leap year february",
			date:          day(2024, time.February, 29),
			expectedStart: day(2024, time.February, 1),
			expectedEnd:   day(2024, time.February, 29),
			expectedCode:  "022024",
		},
		{
			name:          "non-leap february",
			date:          day(2023, time.February, 14),
			expectedStart: day(2023, time.February, 1),
			expectedEnd:   day(2023, time.February, 28),
			expectedCode:  "022023",
		},
		{
			name:          "december",
			date:          day(2024, time.December, 15),
			expectedStart: day(2024, time.December, 1),
			expectedEnd:   day(2024, time.December, 31),
			expectedCode:  "122024",
		},
		{
			name:          "timestamp with time of day",
			date:          time.Date(2024, time.April, 30, 23, 59, 59, 0, time.UTC),
			expectedStart: day(2024, time.April, 1),
			expectedEnd:   day(2024, time.April, 30),
			expectedCode:  "042024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewMonthWindow(tt.date)
			if !w.Start.Equal(tt.expectedStart) {
				t.Errorf("expected start %s, got %s", tt.expectedStart, w.Start)
			}
			if !w.End.Equal(tt.expectedEnd) {
				t.Errorf("expected end %s, got %s", tt.expectedEnd, w.End)
			}
			if w.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, w.Code)
			}
		})
	}
}

func TestNewMonthWindow_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// 2024-03-31 22:00 local is already April in UTC.
	w := NewMonthWindow(time.Date(2024, time.March, 31, 22, 0, 0, 0, loc))
	if w.Code != "032024" {
		t.Errorf("expected code 032024, got %s", w.Code)
	}
}

func TestParseMonthCode(t *testing.T) {
	t.Run("valid code", func(t *testing.T) {
		w, err := ParseMonthCode("022024")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Start.Equal(day(2024, time.February, 1)) {
			t.Errorf("unexpected start %s", w.Start)
		}
		if !w.End.Equal(day(2024, time.February, 29)) {
			t.Errorf("unexpected end %s", w.End)
		}
		if w.Code != "022024" {
			t.Errorf("unexpected code %s", w.Code)
		}
	})

	invalid := []string{"", "32024", "0320245", "132024", "002024", "03-2024", "ab2024", "030000", " 32024"}
	for _, code := range invalid {
		t.Run("invalid "+code, func(t *testing.T) {
			if _, err := ParseMonthCode(code); err == nil {
				t.Errorf("expected error for %q", code)
			}
		})
	}
}

func TestLifeEnergyHours(t *testing.T) {
	wage := decimal.NewFromInt(25)
	zero := decimal.Zero
	negative := decimal.NewFromInt(-5)

	tests := []struct {
		name     string
		spent    string
		wage     *decimal.Decimal
		expected string
	}{
		{name: "exact division", spent: "350", wage: &wage, expected: "14"},
		{name: "rounds down tiny amount", spent: "0.01", wage: &wage, expected: "0"},
		{name: "rounds up large amount", spent: "999999.99", wage: &wage, expected: "40000"},
		{name: "half rounds away from zero", spent: "0.125", wage: ptr(decimal.NewFromInt(1)), expected: "0.13"},
		{name: "nil wage", spent: "100", wage: nil, expected: "0"},
		{name: "zero wage", spent: "100", wage: &zero, expected: "0"},
		{name: "negative wage", spent: "100", wage: &negative, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LifeEnergyHours(decimal.RequireFromString(tt.spent), tt.wage)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
