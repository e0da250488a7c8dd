package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
	"github.com/lifeenergy/backend/internal/integration/persistence/model"
)

// reviewRepository implements the adapter.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance.
func NewReviewRepository(db *gorm.DB) adapter.ReviewRepository {
	return &reviewRepository{
		db: db,
	}
}

func preloadCategoryReviews(db *gorm.DB) *gorm.DB {
	return db.Preload("CategoryReviews", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// Create creates a new review without breakdowns.
func (r *reviewRepository) Create(ctx context.Context, review *entity.MonthlyReview) error {
	reviewModel := model.MonthlyReviewFromEntity(review)
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(reviewModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrReviewConflict
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a review and its breakdowns by ID.
func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyReview, error) {
	var reviewModel model.MonthlyReviewModel
	result := preloadCategoryReviews(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&reviewModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReviewNotFound
		}
		return nil, result.Error
	}
	return reviewModel.ToEntity(), nil
}

// FindByMonthCode retrieves the user's review for a month code.
func (r *reviewRepository) FindByMonthCode(ctx context.Context, userID uuid.UUID, monthCode string) (*entity.MonthlyReview, error) {
	var reviewModel model.MonthlyReviewModel
	result := preloadCategoryReviews(r.db.WithContext(ctx)).
		Where("user_id = ? AND month_code = ?", userID, monthCode).
		First(&reviewModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReviewNotFound
		}
		return nil, result.Error
	}
	return reviewModel.ToEntity(), nil
}

// ListByUser retrieves all reviews of a user, most recent month first.
func (r *reviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.MonthlyReview, error) {
	var reviewModels []model.MonthlyReviewModel
	result := preloadCategoryReviews(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("month_start DESC").
		Find(&reviewModels)
	if result.Error != nil {
		return nil, result.Error
	}

	reviews := make([]*entity.MonthlyReview, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = reviewModels[i].ToEntity()
	}
	return reviews, nil
}

// ReplaceCategoryReviews swaps the review's breakdowns and totals in a single transaction,
// so readers see either the previous set or the new one.
func (r *reviewRepository) ReplaceCategoryReviews(ctx context.Context, review *entity.MonthlyReview) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.MonthlyReviewModel{}).
			Where("id = ?", review.ID).
			Updates(map[string]interface{}{
				"total_income":            review.TotalIncome,
				"total_expenses":          review.TotalExpenses,
				"total_life_energy_hours": review.TotalLifeEnergyHours,
				"updated_at":              review.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrReviewNotFound
		}

		if err := tx.Where("monthly_review_id = ?", review.ID).
			Delete(&model.MonthlyCategoryReviewModel{}).Error; err != nil {
			return err
		}

		if len(review.CategoryReviews) == 0 {
			return nil
		}

		children := make([]*model.MonthlyCategoryReviewModel, len(review.CategoryReviews))
		for i, child := range review.CategoryReviews {
			children[i] = model.MonthlyCategoryReviewFromEntity(child)
		}
		return tx.Omit(clause.Associations).Create(&children).Error
	})
}

// UpdateMetadata writes notes and/or completed on a review.
func (r *reviewRepository) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata adapter.ReviewMetadata) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if metadata.Notes != nil {
		updates["notes"] = *metadata.Notes
	}
	if metadata.Completed != nil {
		updates["completed"] = *metadata.Completed
	}

	result := r.db.WithContext(ctx).
		Model(&model.MonthlyReviewModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrReviewNotFound
	}
	return nil
}

// FindCategoryReviewByID retrieves a single breakdown by ID.
func (r *reviewRepository) FindCategoryReviewByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyCategoryReview, error) {
	var childModel model.MonthlyCategoryReviewModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&childModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryReviewNotFound
		}
		return nil, result.Error
	}
	return childModel.ToEntity(), nil
}

// UpdateCategoryReflection writes reflection marks on a breakdown.
func (r *reviewRepository) UpdateCategoryReflection(ctx context.Context, id uuid.UUID, reflection adapter.CategoryReflection) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if reflection.ReceivedFulfillment != nil {
		updates["received_fulfillment"] = string(*reflection.ReceivedFulfillment)
	}
	if reflection.AlignedWithValues != nil {
		updates["aligned_with_values"] = string(*reflection.AlignedWithValues)
	}
	if reflection.WouldChangePostFI != nil {
		updates["would_change_post_fi"] = string(*reflection.WouldChangePostFI)
	}

	result := r.db.WithContext(ctx).
		Model(&model.MonthlyCategoryReviewModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryReviewNotFound
	}
	return nil
}
