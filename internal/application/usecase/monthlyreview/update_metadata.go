package monthlyreview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
)

// Fields accepted by UpdateMetadata.
const (
	FieldNotes     = "notes"
	FieldCompleted = "completed"
)

// UpdateMetadataInput represents the input for a review metadata update.
type UpdateMetadataInput struct {
	ReviewID  uuid.UUID
	UserID    uuid.UUID
	Notes     *string // Optional
	Completed *bool   // Optional
	// Fields lists every field name the caller tried to set, including unknown ones.
	Fields []string
}

// UpdateMetadataOutput represents the output of a review metadata update.
type UpdateMetadataOutput struct {
	Review *entity.MonthlyReview
}

// UpdateMetadataUseCase writes the user-editable fields of a review.
// Totals and month fields belong to the aggregator and are rejected here.
type UpdateMetadataUseCase struct {
	reviewRepo adapter.ReviewRepository
}

// NewUpdateMetadataUseCase creates a new UpdateMetadataUseCase instance.
func NewUpdateMetadataUseCase(reviewRepo adapter.ReviewRepository) *UpdateMetadataUseCase {
	return &UpdateMetadataUseCase{
		reviewRepo: reviewRepo,
	}
}

// Execute performs the update.
func (uc *UpdateMetadataUseCase) Execute(ctx context.Context, input UpdateMetadataInput) (*UpdateMetadataOutput, error) {
	var rejected []string
	for _, field := range input.Fields {
		if field != FieldNotes && field != FieldCompleted {
			rejected = append(rejected, field)
		}
	}
	if len(rejected) > 0 {
		return nil, domainerror.NewReviewError(
			domainerror.ErrCodeDisallowedReviewField,
			"only notes and completed can be updated, got: "+strings.Join(rejected, ", "),
			domainerror.ErrDisallowedReviewField,
		)
	}

	if input.Notes == nil && input.Completed == nil {
		return nil, domainerror.NewReviewError(
			domainerror.ErrCodeMissingReviewFields,
			"at least one of notes or completed is required",
			domainerror.ErrDisallowedReviewField,
		)
	}

	review, err := findOwnedReview(ctx, uc.reviewRepo, input.ReviewID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Completed != nil && !*input.Completed && review.Completed {
		return nil, domainerror.NewReviewError(
			domainerror.ErrCodeReviewAlreadyCompleted,
			"completed reviews cannot be reopened",
			domainerror.ErrReviewAlreadyCompleted,
		)
	}

	metadata := adapter.ReviewMetadata{
		Notes:     input.Notes,
		Completed: input.Completed,
	}
	if err := uc.reviewRepo.UpdateMetadata(ctx, review.ID, metadata); err != nil {
		return nil, fmt.Errorf("failed to update monthly review: %w", err)
	}

	if input.Notes != nil {
		review.Notes = *input.Notes
	}
	if input.Completed != nil {
		review.Completed = *input.Completed
	}
	review.UpdatedAt = time.Now().UTC()

	return &UpdateMetadataOutput{
		Review: review,
	}, nil
}
