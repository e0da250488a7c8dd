package monthlyreview

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
)

// ToggleCompleteInput represents the input for completing a review.
type ToggleCompleteInput struct {
	ReviewID uuid.UUID
	UserID   uuid.UUID
}

// ToggleCompleteOutput represents the output of completing a review.
type ToggleCompleteOutput struct {
	Review *entity.MonthlyReview
}

// ToggleCompleteUseCase marks a review as completed. Completion is one-way;
// toggling an already completed review leaves it unchanged.
type ToggleCompleteUseCase struct {
	reviewRepo adapter.ReviewRepository
}

// NewToggleCompleteUseCase creates a new ToggleCompleteUseCase instance.
func NewToggleCompleteUseCase(reviewRepo adapter.ReviewRepository) *ToggleCompleteUseCase {
	return &ToggleCompleteUseCase{
		reviewRepo: reviewRepo,
	}
}

// Execute performs the toggle.
func (uc *ToggleCompleteUseCase) Execute(ctx context.Context, input ToggleCompleteInput) (*ToggleCompleteOutput, error) {
	review, err := findOwnedReview(ctx, uc.reviewRepo, input.ReviewID, input.UserID)
	if err != nil {
		return nil, err
	}

	if review.Completed {
		return &ToggleCompleteOutput{Review: review}, nil
	}

	completed := true
	if err := uc.reviewRepo.UpdateMetadata(ctx, review.ID, adapter.ReviewMetadata{Completed: &completed}); err != nil {
		return nil, fmt.Errorf("failed to complete monthly review: %w", err)
	}

	review.Completed = true
	review.UpdatedAt = time.Now().UTC()

	return &ToggleCompleteOutput{
		Review: review,
	}, nil
}
