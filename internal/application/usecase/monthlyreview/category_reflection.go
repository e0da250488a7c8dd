package monthlyreview

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
)

// GetCategoryReviewInput represents the input for fetching a category breakdown.
type GetCategoryReviewInput struct {
	CategoryReviewID uuid.UUID
	UserID           uuid.UUID
}

// GetCategoryReviewOutput represents the output of fetching a category breakdown.
type GetCategoryReviewOutput struct {
	CategoryReview *entity.MonthlyCategoryReview
}

// GetCategoryReviewUseCase returns one category breakdown of the user's reviews.
type GetCategoryReviewUseCase struct {
	reviewRepo adapter.ReviewRepository
}

// NewGetCategoryReviewUseCase creates a new GetCategoryReviewUseCase instance.
func NewGetCategoryReviewUseCase(reviewRepo adapter.ReviewRepository) *GetCategoryReviewUseCase {
	return &GetCategoryReviewUseCase{
		reviewRepo: reviewRepo,
	}
}

// Execute performs the lookup.
func (uc *GetCategoryReviewUseCase) Execute(ctx context.Context, input GetCategoryReviewInput) (*GetCategoryReviewOutput, error) {
	categoryReview, err := findOwnedCategoryReview(ctx, uc.reviewRepo, input.CategoryReviewID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetCategoryReviewOutput{
		CategoryReview: categoryReview,
	}, nil
}

// UpdateCategoryReflectionInput represents the input for updating reflection marks.
// Marks are raw wire values; see entity.ParseMark.
type UpdateCategoryReflectionInput struct {
	CategoryReviewID    uuid.UUID
	UserID              uuid.UUID
	ReceivedFulfillment *string // Optional
	AlignedWithValues   *string // Optional
	WouldChangePostFI   *string // Optional
}

// UpdateCategoryReflectionOutput represents the output of updating reflection marks.
type UpdateCategoryReflectionOutput struct {
	CategoryReview *entity.MonthlyCategoryReview
}

// UpdateCategoryReflectionUseCase records the user's reflection on a category's monthly spend.
type UpdateCategoryReflectionUseCase struct {
	reviewRepo adapter.ReviewRepository
}

// NewUpdateCategoryReflectionUseCase creates a new UpdateCategoryReflectionUseCase instance.
func NewUpdateCategoryReflectionUseCase(reviewRepo adapter.ReviewRepository) *UpdateCategoryReflectionUseCase {
	return &UpdateCategoryReflectionUseCase{
		reviewRepo: reviewRepo,
	}
}

// Execute performs the update.
func (uc *UpdateCategoryReflectionUseCase) Execute(ctx context.Context, input UpdateCategoryReflectionInput) (*UpdateCategoryReflectionOutput, error) {
	var reflection adapter.CategoryReflection
	var err error

	if reflection.ReceivedFulfillment, err = parseOptionalMark("received_fulfillment", input.ReceivedFulfillment); err != nil {
		return nil, err
	}
	if reflection.AlignedWithValues, err = parseOptionalMark("aligned_with_values", input.AlignedWithValues); err != nil {
		return nil, err
	}
	if reflection.WouldChangePostFI, err = parseOptionalMark("would_change_post_fi", input.WouldChangePostFI); err != nil {
		return nil, err
	}

	categoryReview, err := findOwnedCategoryReview(ctx, uc.reviewRepo, input.CategoryReviewID, input.UserID)
	if err != nil {
		return nil, err
	}

	if reflection.ReceivedFulfillment == nil && reflection.AlignedWithValues == nil && reflection.WouldChangePostFI == nil {
		return &UpdateCategoryReflectionOutput{CategoryReview: categoryReview}, nil
	}

	if err := uc.reviewRepo.UpdateCategoryReflection(ctx, categoryReview.ID, reflection); err != nil {
		return nil, fmt.Errorf("failed to update monthly category review: %w", err)
	}

	if reflection.ReceivedFulfillment != nil {
		categoryReview.ReceivedFulfillment = *reflection.ReceivedFulfillment
	}
	if reflection.AlignedWithValues != nil {
		categoryReview.AlignedWithValues = *reflection.AlignedWithValues
	}
	if reflection.WouldChangePostFI != nil {
		categoryReview.WouldChangePostFI = *reflection.WouldChangePostFI
	}
	categoryReview.UpdatedAt = time.Now().UTC()

	return &UpdateCategoryReflectionOutput{
		CategoryReview: categoryReview,
	}, nil
}

func parseOptionalMark(field string, value *string) (*entity.Mark, error) {
	if value == nil {
		return nil, nil
	}
	mark, ok := entity.ParseMark(*value)
	if !ok {
		return nil, domainerror.NewReviewError(
			domainerror.ErrCodeInvalidMark,
			fmt.Sprintf("%s must be negative, neutral or positive", field),
			domainerror.ErrInvalidMark,
		)
	}
	return &mark, nil
}
