package monthlyreview

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
)

// ListReviewsInput represents the input for listing reviews.
type ListReviewsInput struct {
	UserID uuid.UUID
}

// ListReviewsOutput represents the output of listing reviews.
type ListReviewsOutput struct {
	Reviews []*entity.MonthlyReview
}

// ListReviewsUseCase lists a user's reviews, most recent month first.
type ListReviewsUseCase struct {
	reviewRepo adapter.ReviewRepository
}

// NewListReviewsUseCase creates a new ListReviewsUseCase instance.
func NewListReviewsUseCase(reviewRepo adapter.ReviewRepository) *ListReviewsUseCase {
	return &ListReviewsUseCase{
		reviewRepo: reviewRepo,
	}
}

// Execute performs the listing.
func (uc *ListReviewsUseCase) Execute(ctx context.Context, input ListReviewsInput) (*ListReviewsOutput, error) {
	reviews, err := uc.reviewRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*entity.MonthlyReview{}
	}

	return &ListReviewsOutput{
		Reviews: reviews,
	}, nil
}
