// Package monthlyreview contains the monthly review aggregation engine and its lifecycle use cases.
package monthlyreview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
	"github.com/lifeenergy/backend/internal/domain/valueobject"
)

// CategoryBreakdown is the aggregated spend of one category for a month.
type CategoryBreakdown struct {
	Spend           entity.CategorySpend
	LifeEnergyHours decimal.Decimal
}

// AggregateResult is the computed summary of one user's month.
type AggregateResult struct {
	TotalIncome          decimal.Decimal
	TotalExpenses        decimal.Decimal
	TotalLifeEnergyHours decimal.Decimal
	Categories           []CategoryBreakdown
}

// Aggregator recomputes monthly totals from the ledger and writes them onto reviews.
type Aggregator struct {
	ledgerRepo adapter.LedgerRepository
	reviewRepo adapter.ReviewRepository
	userRepo   adapter.UserRepository
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(
	ledgerRepo adapter.LedgerRepository,
	reviewRepo adapter.ReviewRepository,
	userRepo adapter.UserRepository,
) *Aggregator {
	return &Aggregator{
		ledgerRepo: ledgerRepo,
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

// Aggregate sums the user's income and per-category spend inside window and converts
// spend into life energy hours. The month-level hours are the running sum of the
// already rounded per-category hours.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	userID uuid.UUID,
	window valueobject.MonthWindow,
	hourlyWage *decimal.Decimal,
) (*AggregateResult, error) {
	income, err := a.ledgerRepo.SumIncome(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}

	spends, err := a.ledgerRepo.ExpensesByCategory(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses by category: %w", err)
	}

	result := &AggregateResult{
		TotalIncome:          income,
		TotalExpenses:        decimal.Zero,
		TotalLifeEnergyHours: decimal.Zero,
		Categories:           make([]CategoryBreakdown, 0, len(spends)),
	}

	for _, spend := range spends {
		if spend.TotalSpent.IsZero() {
			continue
		}
		if spend.TotalSpent.IsNegative() {
			return nil, domainerror.NewReviewError(
				domainerror.ErrCodeLifeEnergyComputation,
				fmt.Sprintf("category %s has negative spend for %s", spend.CategoryID, window.Code),
				domainerror.ErrLifeEnergyComputation,
			)
		}

		hours := valueobject.LifeEnergyHours(spend.TotalSpent, hourlyWage)
		result.Categories = append(result.Categories, CategoryBreakdown{
			Spend:           spend,
			LifeEnergyHours: hours,
		})
		result.TotalExpenses = result.TotalExpenses.Add(spend.TotalSpent)
		result.TotalLifeEnergyHours = result.TotalLifeEnergyHours.Add(hours)
	}

	return result, nil
}

// Apply writes an aggregate onto review, replacing its totals and breakdowns in memory.
// Notes, completion and month fields are left untouched.
func (a *Aggregator) Apply(review *entity.MonthlyReview, result *AggregateResult) {
	review.TotalIncome = result.TotalIncome
	review.TotalExpenses = result.TotalExpenses
	review.TotalLifeEnergyHours = result.TotalLifeEnergyHours
	review.UpdatedAt = time.Now().UTC()

	children := make([]*entity.MonthlyCategoryReview, len(result.Categories))
	for i, breakdown := range result.Categories {
		children[i] = entity.NewMonthlyCategoryReview(review, i, breakdown.Spend, breakdown.LifeEnergyHours)
	}
	review.CategoryReviews = children
}

// Refresh recomputes review from the current ledger and atomically replaces its
// breakdowns and totals in the review store.
func (a *Aggregator) Refresh(ctx context.Context, review *entity.MonthlyReview) error {
	user, err := a.userRepo.FindByID(ctx, review.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return domainerror.NewReviewError(
				domainerror.ErrCodeReviewUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	window := valueobject.NewMonthWindow(review.MonthStart)
	result, err := a.Aggregate(ctx, review.UserID, window, user.HourlyWage)
	if err != nil {
		return err
	}

	a.Apply(review, result)

	if err := a.reviewRepo.ReplaceCategoryReviews(ctx, review); err != nil {
		return fmt.Errorf("failed to replace category reviews: %w", err)
	}

	slog.Debug("Monthly review aggregated",
		"reviewID", review.ID,
		"userID", review.UserID,
		"monthCode", review.MonthCode,
		"categories", len(review.CategoryReviews),
	)

	return nil
}
