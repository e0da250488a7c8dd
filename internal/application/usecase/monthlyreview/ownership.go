package monthlyreview

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
)

// findOwnedReview loads a review and hides reviews of other users behind a not-found error.
func findOwnedReview(ctx context.Context, reviewRepo adapter.ReviewRepository, reviewID, userID uuid.UUID) (*entity.MonthlyReview, error) {
	review, err := reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReviewNotFound) {
			return nil, reviewNotFound()
		}
		return nil, fmt.Errorf("failed to find monthly review: %w", err)
	}
	if review.UserID != userID {
		return nil, reviewNotFound()
	}
	return review, nil
}

// findOwnedCategoryReview is findOwnedReview for category breakdowns.
func findOwnedCategoryReview(ctx context.Context, reviewRepo adapter.ReviewRepository, id, userID uuid.UUID) (*entity.MonthlyCategoryReview, error) {
	categoryReview, err := reviewRepo.FindCategoryReviewByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryReviewNotFound) {
			return nil, categoryReviewNotFound()
		}
		return nil, fmt.Errorf("failed to find monthly category review: %w", err)
	}
	if categoryReview.UserID != userID {
		return nil, categoryReviewNotFound()
	}
	return categoryReview, nil
}

func reviewNotFound() error {
	return domainerror.NewReviewError(
		domainerror.ErrCodeReviewNotFound,
		"monthly review not found",
		domainerror.ErrReviewNotFound,
	)
}

func categoryReviewNotFound() error {
	return domainerror.NewReviewError(
		domainerror.ErrCodeCategoryReviewNotFound,
		"monthly category review not found",
		domainerror.ErrCategoryReviewNotFound,
	)
}
