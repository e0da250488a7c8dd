package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifeenergy/backend/internal/application/usecase/monthlyreview"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
	"github.com/lifeenergy/backend/internal/integration/entrypoint/dto"
)

// MonthlyCategoryReviewController handles category breakdown endpoints.
type MonthlyCategoryReviewController struct {
	getUseCase    *monthlyreview.GetCategoryReviewUseCase
	updateUseCase *monthlyreview.UpdateCategoryReflectionUseCase
}

// NewMonthlyCategoryReviewController creates a new category breakdown controller instance.
func NewMonthlyCategoryReviewController(
	getUseCase *monthlyreview.GetCategoryReviewUseCase,
	updateUseCase *monthlyreview.UpdateCategoryReflectionUseCase,
) *MonthlyCategoryReviewController {
	return &MonthlyCategoryReviewController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /monthly-category-reviews/:id requests.
func (c *MonthlyCategoryReviewController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "Invalid monthly category review ID format")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), monthlyreview.GetCategoryReviewInput{
		CategoryReviewID: id,
		UserID:           userID,
	})
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyCategoryReviewResponse(output.CategoryReview))
}

// Update handles PATCH /monthly-category-reviews/:id requests.
func (c *MonthlyCategoryReviewController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "Invalid monthly category review ID format")
	if !ok {
		return
	}

	var req dto.UpdateCategoryReflectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidMark),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), monthlyreview.UpdateCategoryReflectionInput{
		CategoryReviewID:    id,
		UserID:              userID,
		ReceivedFulfillment: req.ReceivedFulfillment,
		AlignedWithValues:   req.AlignedWithValues,
		WouldChangePostFI:   req.WouldChangePostFI,
	})
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyCategoryReviewResponse(output.CategoryReview))
}
