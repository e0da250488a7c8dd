// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/domain/entity"
)

// ReviewMetadata holds the only review fields writable outside the aggregator.
// Nil fields are left untouched.
type ReviewMetadata struct {
	Notes     *string
	Completed *bool
}

// CategoryReflection holds the reflection marks of a category breakdown.
// Nil fields are left untouched.
type CategoryReflection struct {
	ReceivedFulfillment *entity.Mark
	AlignedWithValues   *entity.Mark
	WouldChangePostFI   *entity.Mark
}

// ReviewRepository defines persistence operations for monthly reviews and their category breakdowns.
type ReviewRepository interface {
	// Create persists a new review. It returns domainerror.ErrReviewConflict when the
	// user already has a review for the same month code.
	Create(ctx context.Context, review *entity.MonthlyReview) error

	// FindByID retrieves a review and its category breakdowns.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyReview, error)

	// FindByMonthCode retrieves the user's review for a month code.
	FindByMonthCode(ctx context.Context, userID uuid.UUID, monthCode string) (*entity.MonthlyReview, error)

	// ListByUser retrieves all of the user's reviews, most recent month first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.MonthlyReview, error)

	// ReplaceCategoryReviews deletes every breakdown of the review, inserts review.CategoryReviews
	// and writes the review totals, all in one transaction.
	ReplaceCategoryReviews(ctx context.Context, review *entity.MonthlyReview) error

	// UpdateMetadata writes notes and/or completed on a review.
	UpdateMetadata(ctx context.Context, id uuid.UUID, metadata ReviewMetadata) error

	// FindCategoryReviewByID retrieves a single category breakdown.
	FindCategoryReviewByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyCategoryReview, error)

	// UpdateCategoryReflection writes reflection marks on a category breakdown.
	UpdateCategoryReflection(ctx context.Context, id uuid.UUID, reflection CategoryReflection) error
}
