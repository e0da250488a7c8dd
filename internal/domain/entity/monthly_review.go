// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mark is a qualitative reflection a user attaches to a category's monthly spend.
type Mark string

const (
	MarkNegative Mark = "negative"
	MarkNeutral  Mark = "neutral"
	MarkPositive Mark = "positive"
)

// legacyMarkSymbols maps the symbolic marks used by older clients.
var legacyMarkSymbols = map[string]Mark{
	"-": MarkNegative,
	"0": MarkNeutral,
	"+": MarkPositive,
}

// ParseMark converts a wire value into a Mark.
// It accepts the named values and the legacy "-", "0", "+" symbols.
func ParseMark(value string) (Mark, bool) {
	if m, ok := legacyMarkSymbols[value]; ok {
		return m, true
	}
	m := Mark(value)
	return m, m.IsValid()
}

// IsValid reports whether m is one of the three known marks.
func (m Mark) IsValid() bool {
	return m == MarkNegative || m == MarkNeutral || m == MarkPositive
}

// MonthlyReview is one user's summary of one calendar month.
// At most one exists per (UserID, MonthCode).
type MonthlyReview struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	MonthCode            string
	MonthStart           time.Time
	TotalIncome          decimal.Decimal
	TotalExpenses        decimal.Decimal
	TotalLifeEnergyHours decimal.Decimal
	Completed            bool
	Notes                string
	CategoryReviews      []*MonthlyCategoryReview
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewMonthlyReview creates an empty review for the month starting at monthStart.
func NewMonthlyReview(userID uuid.UUID, monthStart time.Time, monthCode string) *MonthlyReview {
	now := time.Now().UTC()
	return &MonthlyReview{
		ID:                   uuid.New(),
		UserID:               userID,
		MonthCode:            monthCode,
		MonthStart:           monthStart,
		TotalIncome:          decimal.Zero,
		TotalExpenses:        decimal.Zero,
		TotalLifeEnergyHours: decimal.Zero,
		CategoryReviews:      []*MonthlyCategoryReview{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// MonthlyCategoryReview is the breakdown of one category inside a MonthlyReview.
// Rows are regenerated on every rebuild and only exist for categories with spend.
type MonthlyCategoryReview struct {
	ID                   uuid.UUID
	MonthlyReviewID      uuid.UUID
	UserID               uuid.UUID
	CategoryID           uuid.UUID
	CategoryName         string
	Position             int
	MonthStart           time.Time
	TotalSpent           decimal.Decimal
	TotalLifeEnergyHours decimal.Decimal
	ReceivedFulfillment  Mark
	AlignedWithValues    Mark
	WouldChangePostFI    Mark
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewMonthlyCategoryReview creates a breakdown row with neutral reflection marks.
func NewMonthlyCategoryReview(review *MonthlyReview, position int, spend CategorySpend, hours decimal.Decimal) *MonthlyCategoryReview {
	now := time.Now().UTC()
	return &MonthlyCategoryReview{
		ID:                   uuid.New(),
		MonthlyReviewID:      review.ID,
		UserID:               review.UserID,
		CategoryID:           spend.CategoryID,
		CategoryName:         spend.CategoryName,
		Position:             position,
		MonthStart:           review.MonthStart,
		TotalSpent:           spend.TotalSpent,
		TotalLifeEnergyHours: hours,
		ReceivedFulfillment:  MarkNeutral,
		AlignedWithValues:    MarkNeutral,
		WouldChangePostFI:    MarkNeutral,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
