// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/domain/entity"
)

// LedgerRepository defines read-only range queries over a user's categories, expenses and incomes.
// Both bounds are calendar days and both are inclusive.
type LedgerRepository interface {
	// SumIncome returns the sum of the user's incomes received between start and end.
	SumIncome(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)

	// ExpensesByCategory returns the total spent per category between start and end,
	// ordered by category name. Categories without spend in the window are omitted.
	ExpensesByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CategorySpend, error)
}

// LedgerWriter records ledger rows. It is used by account seeding and test fixtures;
// the review engine itself never writes the ledger.
type LedgerWriter interface {
	// CreateCategory creates a new category.
	CreateCategory(ctx context.Context, category *entity.Category) error

	// CreateExpense creates a new expense.
	CreateExpense(ctx context.Context, expense *entity.Expense) error

	// CreateIncome creates a new income.
	CreateIncome(ctx context.Context, income *entity.Income) error
}
