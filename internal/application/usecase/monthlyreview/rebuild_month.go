package monthlyreview

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
)

// RebuildMonthInput represents the input for rebuilding a review.
type RebuildMonthInput struct {
	ReviewID uuid.UUID
	UserID   uuid.UUID
}

// RebuildMonthOutput represents the output of a rebuild.
type RebuildMonthOutput struct {
	Review *entity.MonthlyReview
}

// RebuildMonthUseCase recomputes a review's totals and category breakdowns from the current ledger.
// Breakdowns are regenerated, so their reflection marks reset to neutral.
type RebuildMonthUseCase struct {
	reviewRepo adapter.ReviewRepository
	aggregator *Aggregator
}

// NewRebuildMonthUseCase creates a new RebuildMonthUseCase instance.
func NewRebuildMonthUseCase(reviewRepo adapter.ReviewRepository, aggregator *Aggregator) *RebuildMonthUseCase {
	return &RebuildMonthUseCase{
		reviewRepo: reviewRepo,
		aggregator: aggregator,
	}
}

// Execute performs the rebuild.
func (uc *RebuildMonthUseCase) Execute(ctx context.Context, input RebuildMonthInput) (*RebuildMonthOutput, error) {
	review, err := findOwnedReview(ctx, uc.reviewRepo, input.ReviewID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.aggregator.Refresh(ctx, review); err != nil {
		return nil, err
	}

	slog.Info("Monthly review rebuilt",
		"reviewID", review.ID,
		"userID", review.UserID,
		"monthCode", review.MonthCode,
	)

	return &RebuildMonthOutput{
		Review: review,
	}, nil
}
