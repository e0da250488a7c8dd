package persistence

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	"github.com/lifeenergy/backend/internal/integration/persistence/model"
)

// LedgerRepository implements adapter.LedgerRepository and adapter.LedgerWriter.
// Amounts are summed in Go so results stay exact on drivers without a decimal type.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{
		db: db,
	}
}

var (
	_ adapter.LedgerRepository = (*LedgerRepository)(nil)
	_ adapter.LedgerWriter     = (*LedgerRepository)(nil)
)

// dayAfter turns an inclusive end day into an exclusive bound, so rows are
// matched whatever time of day the driver stores with a date.
func dayAfter(end time.Time) time.Time {
	return time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// SumIncome returns the sum of the user's incomes received between start and end.
func (r *LedgerRepository) SumIncome(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	result := r.db.WithContext(ctx).
		Model(&model.IncomeModel{}).
		Where("user_id = ?", userID).
		Where("received_on >= ? AND received_on < ?", start, dayAfter(end)).
		Pluck("amount", &amounts)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}

	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total, nil
}

type categoryAmountRow struct {
	CategoryID   uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
}

// ExpensesByCategory returns the total spent per category between start and end.
func (r *LedgerRepository) ExpensesByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CategorySpend, error) {
	var rows []categoryAmountRow
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Select("expenses.category_id AS category_id, categories.name AS category_name, expenses.amount AS amount").
		Joins("JOIN categories ON categories.id = expenses.category_id AND categories.deleted_at IS NULL").
		Where("categories.user_id = ?", userID).
		Where("expenses.user_id = ?", userID).
		Where("expenses.occurred_on >= ? AND expenses.occurred_on < ?", start, dayAfter(end)).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	byCategory := make(map[uuid.UUID]*entity.CategorySpend)
	for _, row := range rows {
		spend, ok := byCategory[row.CategoryID]
		if !ok {
			spend = &entity.CategorySpend{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
				TotalSpent:   decimal.Zero,
			}
			byCategory[row.CategoryID] = spend
		}
		spend.TotalSpent = spend.TotalSpent.Add(row.Amount)
	}

	spends := make([]entity.CategorySpend, 0, len(byCategory))
	for _, spend := range byCategory {
		if spend.TotalSpent.IsZero() {
			continue
		}
		spends = append(spends, *spend)
	}
	sort.Slice(spends, func(i, j int) bool {
		if spends[i].CategoryName != spends[j].CategoryName {
			return spends[i].CategoryName < spends[j].CategoryName
		}
		return spends[i].CategoryID.String() < spends[j].CategoryID.String()
	})

	return spends, nil
}

// CreateCategory creates a new category in the database.
func (r *LedgerRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).Create(model.CategoryFromEntity(category))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateExpense creates a new expense in the database.
func (r *LedgerRepository) CreateExpense(ctx context.Context, expense *entity.Expense) error {
	result := r.db.WithContext(ctx).Create(model.ExpenseFromEntity(expense))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateIncome creates a new income in the database.
func (r *LedgerRepository) CreateIncome(ctx context.Context, income *entity.Income) error {
	result := r.db.WithContext(ctx).Create(model.IncomeFromEntity(income))
	if result.Error != nil {
		return result.Error
	}
	return nil
}
