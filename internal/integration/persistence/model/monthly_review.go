package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/domain/entity"
)

// MonthlyReviewModel represents the monthly_reviews table in the database.
type MonthlyReviewModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_reviews_user_month,priority:1"`
	MonthCode            string          `gorm:"type:varchar(6);not null;uniqueIndex:idx_monthly_reviews_user_month,priority:2"`
	MonthStart           time.Time       `gorm:"type:date;not null"`
	TotalIncome          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalExpenses        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalLifeEnergyHours decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Completed            bool            `gorm:"not null;default:false"`
	Notes                string          `gorm:"type:text"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`

	User            *UserModel                   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	CategoryReviews []MonthlyCategoryReviewModel `gorm:"foreignKey:MonthlyReviewID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the MonthlyReviewModel.
func (MonthlyReviewModel) TableName() string {
	return "monthly_reviews"
}

// ToEntity converts a MonthlyReviewModel and its loaded breakdowns to a domain MonthlyReview entity.
func (m *MonthlyReviewModel) ToEntity() *entity.MonthlyReview {
	children := make([]*entity.MonthlyCategoryReview, len(m.CategoryReviews))
	for i := range m.CategoryReviews {
		children[i] = m.CategoryReviews[i].ToEntity()
	}

	return &entity.MonthlyReview{
		ID:                   m.ID,
		UserID:               m.UserID,
		MonthCode:            m.MonthCode,
		MonthStart:           asDate(m.MonthStart),
		TotalIncome:          m.TotalIncome,
		TotalExpenses:        m.TotalExpenses,
		TotalLifeEnergyHours: m.TotalLifeEnergyHours,
		Completed:            m.Completed,
		Notes:                m.Notes,
		CategoryReviews:      children,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// MonthlyReviewFromEntity creates a MonthlyReviewModel from a domain MonthlyReview entity.
// Breakdowns are not copied; they are written separately.
func MonthlyReviewFromEntity(review *entity.MonthlyReview) *MonthlyReviewModel {
	return &MonthlyReviewModel{
		ID:                   review.ID,
		UserID:               review.UserID,
		MonthCode:            review.MonthCode,
		MonthStart:           review.MonthStart,
		TotalIncome:          review.TotalIncome,
		TotalExpenses:        review.TotalExpenses,
		TotalLifeEnergyHours: review.TotalLifeEnergyHours,
		Completed:            review.Completed,
		Notes:                review.Notes,
		CreatedAt:            review.CreatedAt,
		UpdatedAt:            review.UpdatedAt,
	}
}

// MonthlyCategoryReviewModel represents the monthly_category_reviews table in the database.
type MonthlyCategoryReviewModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MonthlyReviewID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryName         string          `gorm:"type:varchar(100);not null"`
	Position             int             `gorm:"not null;default:0"`
	MonthStart           time.Time       `gorm:"type:date;not null"`
	TotalSpent           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalLifeEnergyHours decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReceivedFulfillment  string          `gorm:"type:varchar(10);not null;default:'neutral'"`
	AlignedWithValues    string          `gorm:"type:varchar(10);not null;default:'neutral'"`
	WouldChangePostFI    string          `gorm:"column:would_change_post_fi;type:varchar(10);not null;default:'neutral'"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the MonthlyCategoryReviewModel.
func (MonthlyCategoryReviewModel) TableName() string {
	return "monthly_category_reviews"
}

// ToEntity converts a MonthlyCategoryReviewModel to a domain MonthlyCategoryReview entity.
func (m *MonthlyCategoryReviewModel) ToEntity() *entity.MonthlyCategoryReview {
	return &entity.MonthlyCategoryReview{
		ID:                   m.ID,
		MonthlyReviewID:      m.MonthlyReviewID,
		UserID:               m.UserID,
		CategoryID:           m.CategoryID,
		CategoryName:         m.CategoryName,
		Position:             m.Position,
		MonthStart:           asDate(m.MonthStart),
		TotalSpent:           m.TotalSpent,
		TotalLifeEnergyHours: m.TotalLifeEnergyHours,
		ReceivedFulfillment:  entity.Mark(m.ReceivedFulfillment),
		AlignedWithValues:    entity.Mark(m.AlignedWithValues),
		WouldChangePostFI:    entity.Mark(m.WouldChangePostFI),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// MonthlyCategoryReviewFromEntity creates a MonthlyCategoryReviewModel from a domain entity.
func MonthlyCategoryReviewFromEntity(c *entity.MonthlyCategoryReview) *MonthlyCategoryReviewModel {
	return &MonthlyCategoryReviewModel{
		ID:                   c.ID,
		MonthlyReviewID:      c.MonthlyReviewID,
		UserID:               c.UserID,
		CategoryID:           c.CategoryID,
		CategoryName:         c.CategoryName,
		Position:             c.Position,
		MonthStart:           c.MonthStart,
		TotalSpent:           c.TotalSpent,
		TotalLifeEnergyHours: c.TotalLifeEnergyHours,
		ReceivedFulfillment:  string(c.ReceivedFulfillment),
		AlignedWithValues:    string(c.AlignedWithValues),
		WouldChangePostFI:    string(c.WouldChangePostFI),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// asDate normalizes a date column read back from the driver to UTC midnight.
func asDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
