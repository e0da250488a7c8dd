package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lifeenergy/backend/internal/domain/entity"
	"github.com/lifeenergy/backend/internal/domain/valueobject"
)

const dateLayout = "2006-01-02"

// GetOrCreateMonthRequest represents the request body for resolving a month's review.
type GetOrCreateMonthRequest struct {
	Month *string `json:"month,omitempty"` // YYYY-MM-DD, defaults to today
}

// UpdateCategoryReflectionRequest represents the request body for updating reflection marks.
type UpdateCategoryReflectionRequest struct {
	ReceivedFulfillment *string `json:"received_fulfillment,omitempty"`
	AlignedWithValues   *string `json:"aligned_with_values,omitempty"`
	WouldChangePostFI   *string `json:"would_change_post_fi,omitempty"`
}

// MonthlyReviewResponse represents a single monthly review in API responses.
type MonthlyReviewResponse struct {
	ID                   string                          `json:"id"`
	UserID               string                          `json:"user_id"`
	MonthCode            string                          `json:"month_code"`
	MonthStart           string                          `json:"month_start"`
	MonthEnd             string                          `json:"month_end"`
	TotalIncome          string                          `json:"total_income"`
	TotalExpenses        string                          `json:"total_expenses"`
	TotalLifeEnergyHours string                          `json:"total_life_energy_hours"`
	Completed            bool                            `json:"completed"`
	Notes                string                          `json:"notes"`
	CategoryReviews      []MonthlyCategoryReviewResponse `json:"category_reviews"`
	CreatedAt            time.Time                       `json:"created_at"`
	UpdatedAt            time.Time                       `json:"updated_at"`
}

// MonthlyCategoryReviewResponse represents a category breakdown in API responses.
type MonthlyCategoryReviewResponse struct {
	ID                   string    `json:"id"`
	MonthlyReviewID      string    `json:"monthly_review_id"`
	CategoryID           string    `json:"category_id"`
	CategoryName         string    `json:"category_name"`
	Position             int       `json:"position"`
	MonthStart           string    `json:"month_start"`
	TotalSpent           string    `json:"total_spent"`
	TotalLifeEnergyHours string    `json:"total_life_energy_hours"`
	ReceivedFulfillment  string    `json:"received_fulfillment"`
	AlignedWithValues    string    `json:"aligned_with_values"`
	WouldChangePostFI    string    `json:"would_change_post_fi"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// MonthlyReviewListResponse represents the response for listing monthly reviews.
type MonthlyReviewListResponse struct {
	MonthlyReviews []MonthlyReviewResponse `json:"monthly_reviews"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ToMonthlyReviewResponse converts a domain MonthlyReview entity to a MonthlyReviewResponse DTO.
func ToMonthlyReviewResponse(review *entity.MonthlyReview) MonthlyReviewResponse {
	window := valueobject.NewMonthWindow(review.MonthStart)

	children := make([]MonthlyCategoryReviewResponse, len(review.CategoryReviews))
	for i, child := range review.CategoryReviews {
		children[i] = ToMonthlyCategoryReviewResponse(child)
	}

	return MonthlyReviewResponse{
		ID:                   review.ID.String(),
		UserID:               review.UserID.String(),
		MonthCode:            review.MonthCode,
		MonthStart:           window.Start.Format(dateLayout),
		MonthEnd:             window.End.Format(dateLayout),
		TotalIncome:          money(review.TotalIncome),
		TotalExpenses:        money(review.TotalExpenses),
		TotalLifeEnergyHours: money(review.TotalLifeEnergyHours),
		Completed:            review.Completed,
		Notes:                review.Notes,
		CategoryReviews:      children,
		CreatedAt:            review.CreatedAt,
		UpdatedAt:            review.UpdatedAt,
	}
}

// ToMonthlyCategoryReviewResponse converts a domain MonthlyCategoryReview entity to its DTO.
func ToMonthlyCategoryReviewResponse(c *entity.MonthlyCategoryReview) MonthlyCategoryReviewResponse {
	return MonthlyCategoryReviewResponse{
		ID:                   c.ID.String(),
		MonthlyReviewID:      c.MonthlyReviewID.String(),
		CategoryID:           c.CategoryID.String(),
		CategoryName:         c.CategoryName,
		Position:             c.Position,
		MonthStart:           c.MonthStart.Format(dateLayout),
		TotalSpent:           money(c.TotalSpent),
		TotalLifeEnergyHours: money(c.TotalLifeEnergyHours),
		ReceivedFulfillment:  string(c.ReceivedFulfillment),
		AlignedWithValues:    string(c.AlignedWithValues),
		WouldChangePostFI:    string(c.WouldChangePostFI),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// ToMonthlyReviewListResponse converts a list of reviews to a MonthlyReviewListResponse DTO.
func ToMonthlyReviewListResponse(reviews []*entity.MonthlyReview) MonthlyReviewListResponse {
	responses := make([]MonthlyReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = ToMonthlyReviewResponse(review)
	}
	return MonthlyReviewListResponse{
		MonthlyReviews: responses,
	}
}
