package monthlyreview

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/domain/entity"
	"github.com/lifeenergy/backend/internal/domain/valueobject"
)

// GetOrCreateMonthInput represents the input for resolving a month's review.
type GetOrCreateMonthInput struct {
	UserID uuid.UUID
	Date   *time.Time // Optional, defaults to today
}

// GetOrCreateMonthOutput represents the output of resolving a month's review.
type GetOrCreateMonthOutput struct {
	Review  *entity.MonthlyReview
	Created bool
}

// GetOrCreateMonthUseCase returns the review of the month containing a date,
// creating and populating it on first access.
type GetOrCreateMonthUseCase struct {
	resolver *MonthResolver
	now      func() time.Time
}

// NewGetOrCreateMonthUseCase creates a new GetOrCreateMonthUseCase instance.
func NewGetOrCreateMonthUseCase(resolver *MonthResolver) *GetOrCreateMonthUseCase {
	return &GetOrCreateMonthUseCase{
		resolver: resolver,
		now:      time.Now,
	}
}

// WithClock replaces the clock used when no date is supplied.
func (uc *GetOrCreateMonthUseCase) WithClock(now func() time.Time) *GetOrCreateMonthUseCase {
	uc.now = now
	return uc
}

// Execute resolves the review.
func (uc *GetOrCreateMonthUseCase) Execute(ctx context.Context, input GetOrCreateMonthInput) (*GetOrCreateMonthOutput, error) {
	date := uc.now()
	if input.Date != nil {
		date = *input.Date
	}

	result, err := uc.resolver.FindOrCreate(ctx, input.UserID, valueobject.NewMonthWindow(date))
	if err != nil {
		return nil, err
	}

	return &GetOrCreateMonthOutput{
		Review:  result.Review,
		Created: result.Created,
	}, nil
}
