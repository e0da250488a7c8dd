package monthlyreview

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
)

// GetReviewInput represents the input for fetching a review.
type GetReviewInput struct {
	ReviewID uuid.UUID
	UserID   uuid.UUID
}

// GetReviewOutput represents the output of fetching a review.
type GetReviewOutput struct {
	Review *entity.MonthlyReview
}

// GetReviewUseCase returns one of the user's reviews as stored.
type GetReviewUseCase struct {
	reviewRepo adapter.ReviewRepository
}

// NewGetReviewUseCase creates a new GetReviewUseCase instance.
func NewGetReviewUseCase(reviewRepo adapter.ReviewRepository) *GetReviewUseCase {
	return &GetReviewUseCase{
		reviewRepo: reviewRepo,
	}
}

// Execute performs the lookup.
func (uc *GetReviewUseCase) Execute(ctx context.Context, input GetReviewInput) (*GetReviewOutput, error) {
	review, err := findOwnedReview(ctx, uc.reviewRepo, input.ReviewID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetReviewOutput{
		Review: review,
	}, nil
}
