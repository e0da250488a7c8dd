// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single spend recorded against one of the user's categories.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	OccurredOn  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(userID, categoryID uuid.UUID, description string, amount decimal.Decimal, occurredOn time.Time) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
		OccurredOn:  occurredOn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Income is money received by the user on a given day.
type Income struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Source       string
	Amount       decimal.Decimal
	ReceivedOn   time.Time
	IsWorkIncome bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewIncome creates a new Income entity.
func NewIncome(userID uuid.UUID, source string, amount decimal.Decimal, receivedOn time.Time) *Income {
	now := time.Now().UTC()
	return &Income{
		ID:         uuid.New(),
		UserID:     userID,
		Source:     source,
		Amount:     amount,
		ReceivedOn: receivedOn,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CategorySpend is the total spent in one category over a date window.
type CategorySpend struct {
	CategoryID   uuid.UUID
	CategoryName string
	TotalSpent   decimal.Decimal
}
