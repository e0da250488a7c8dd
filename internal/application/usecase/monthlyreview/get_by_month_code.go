package monthlyreview

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
	"github.com/lifeenergy/backend/internal/domain/valueobject"
)

// GetByMonthCodeInput represents the input for looking up a review by month code.
type GetByMonthCodeInput struct {
	UserID    uuid.UUID
	MonthCode string
}

// GetByMonthCodeOutput represents the output of a month code lookup.
type GetByMonthCodeOutput struct {
	Review  *entity.MonthlyReview
	Created bool
}

// GetByMonthCodeUseCase resolves a review from its MMYYYY month code.
// A well-formed code for a month without a review creates it, same as GetOrCreateMonth.
type GetByMonthCodeUseCase struct {
	resolver *MonthResolver
}

// NewGetByMonthCodeUseCase creates a new GetByMonthCodeUseCase instance.
func NewGetByMonthCodeUseCase(resolver *MonthResolver) *GetByMonthCodeUseCase {
	return &GetByMonthCodeUseCase{
		resolver: resolver,
	}
}

// Execute performs the lookup.
func (uc *GetByMonthCodeUseCase) Execute(ctx context.Context, input GetByMonthCodeInput) (*GetByMonthCodeOutput, error) {
	window, err := valueobject.ParseMonthCode(input.MonthCode)
	if err != nil {
		return nil, domainerror.NewReviewError(
			domainerror.ErrCodeInvalidMonthCode,
			"month code must be MMYYYY",
			domainerror.ErrInvalidMonthCode,
		)
	}

	result, err := uc.resolver.FindOrCreate(ctx, input.UserID, window)
	if err != nil {
		return nil, err
	}

	return &GetByMonthCodeOutput{
		Review:  result.Review,
		Created: result.Created,
	}, nil
}
