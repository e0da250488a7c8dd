// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifeenergy/backend/internal/application/usecase/monthlyreview"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
	"github.com/lifeenergy/backend/internal/integration/entrypoint/dto"
	"github.com/lifeenergy/backend/internal/integration/entrypoint/middleware"
)

// MonthlyReviewController handles monthly review endpoints.
type MonthlyReviewController struct {
	listUseCase           *monthlyreview.ListReviewsUseCase
	getOrCreateUseCase    *monthlyreview.GetOrCreateMonthUseCase
	getByMonthCodeUseCase *monthlyreview.GetByMonthCodeUseCase
	getUseCase            *monthlyreview.GetReviewUseCase
	updateUseCase         *monthlyreview.UpdateMetadataUseCase
	rebuildUseCase        *monthlyreview.RebuildMonthUseCase
	toggleUseCase         *monthlyreview.ToggleCompleteUseCase
}

// NewMonthlyReviewController creates a new monthly review controller instance.
func NewMonthlyReviewController(
	listUseCase *monthlyreview.ListReviewsUseCase,
	getOrCreateUseCase *monthlyreview.GetOrCreateMonthUseCase,
	getByMonthCodeUseCase *monthlyreview.GetByMonthCodeUseCase,
	getUseCase *monthlyreview.GetReviewUseCase,
	updateUseCase *monthlyreview.UpdateMetadataUseCase,
	rebuildUseCase *monthlyreview.RebuildMonthUseCase,
	toggleUseCase *monthlyreview.ToggleCompleteUseCase,
) *MonthlyReviewController {
	return &MonthlyReviewController{
		listUseCase:           listUseCase,
		getOrCreateUseCase:    getOrCreateUseCase,
		getByMonthCodeUseCase: getByMonthCodeUseCase,
		getUseCase:            getUseCase,
		updateUseCase:         updateUseCase,
		rebuildUseCase:        rebuildUseCase,
		toggleUseCase:         toggleUseCase,
	}
}

// List handles GET /monthly-reviews requests.
func (c *MonthlyReviewController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), monthlyreview.ListReviewsInput{
		UserID: userID,
	})
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReviewListResponse(output.Reviews))
}

// GetOrCreate handles POST /monthly-reviews requests.
// It responds 201 when the review had to be created and 200 when it already existed.
func (c *MonthlyReviewController) GetOrCreate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	// Body is optional
	var req dto.GetOrCreateMonthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidReviewDate),
		})
		return
	}

	input := monthlyreview.GetOrCreateMonthInput{
		UserID: userID,
	}
	if req.Month != nil {
		month, err := time.Parse("2006-01-02", *req.Month)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: domainerror.ErrInvalidReviewDate.Error(),
				Code:  string(domainerror.ErrCodeInvalidReviewDate),
			})
			return
		}
		input.Date = &month
	}

	output, err := c.getOrCreateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(createdStatus(output.Created), dto.ToMonthlyReviewResponse(output.Review))
}

// GetByMonthCode handles GET /monthly-reviews/by-month-code/:month_code requests.
func (c *MonthlyReviewController) GetByMonthCode(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getByMonthCodeUseCase.Execute(ctx.Request.Context(), monthlyreview.GetByMonthCodeInput{
		UserID:    userID,
		MonthCode: ctx.Param("month_code"),
	})
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(createdStatus(output.Created), dto.ToMonthlyReviewResponse(output.Review))
}

// Get handles GET /monthly-reviews/:id requests.
func (c *MonthlyReviewController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	reviewID, ok := parseID(ctx, "Invalid monthly review ID format")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), monthlyreview.GetReviewInput{
		ReviewID: reviewID,
		UserID:   userID,
	})
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReviewResponse(output.Review))
}

// Update handles PATCH /monthly-reviews/:id requests.
// Only notes and completed are accepted; any other key is rejected.
func (c *MonthlyReviewController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	reviewID, ok := parseID(ctx, "Invalid monthly review ID format")
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingReviewFields),
		})
		return
	}

	input := monthlyreview.UpdateMetadataInput{
		ReviewID: reviewID,
		UserID:   userID,
		Fields:   make([]string, 0, len(raw)),
	}
	for field := range raw {
		input.Fields = append(input.Fields, field)
	}
	sort.Strings(input.Fields)

	if value, ok := raw[monthlyreview.FieldNotes]; ok {
		var notes *string
		if err := json.Unmarshal(value, &notes); err != nil || notes == nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "notes must be a string",
				Code:  string(domainerror.ErrCodeMissingReviewFields),
			})
			return
		}
		input.Notes = notes
	}
	if value, ok := raw[monthlyreview.FieldCompleted]; ok {
		var completed *bool
		if err := json.Unmarshal(value, &completed); err != nil || completed == nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "completed must be a boolean",
				Code:  string(domainerror.ErrCodeMissingReviewFields),
			})
			return
		}
		input.Completed = completed
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReviewResponse(output.Review))
}

// Rebuild handles POST /monthly-reviews/:id/rebuild requests.
func (c *MonthlyReviewController) Rebuild(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	reviewID, ok := parseID(ctx, "Invalid monthly review ID format")
	if !ok {
		return
	}

	output, err := c.rebuildUseCase.Execute(ctx.Request.Context(), monthlyreview.RebuildMonthInput{
		ReviewID: reviewID,
		UserID:   userID,
	})
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReviewResponse(output.Review))
}

// ToggleComplete handles PATCH /monthly-reviews/:id/toggle-complete requests.
func (c *MonthlyReviewController) ToggleComplete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	reviewID, ok := parseID(ctx, "Invalid monthly review ID format")
	if !ok {
		return
	}

	output, err := c.toggleUseCase.Execute(ctx.Request.Context(), monthlyreview.ToggleCompleteInput{
		ReviewID: reviewID,
		UserID:   userID,
	})
	if err != nil {
		handleReviewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReviewResponse(output.Review))
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

// requireUser reads the authenticated user and writes a 401 when it is missing.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseID reads the :id path parameter and writes a 400 when it is not a UUID.
func parseID(ctx *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: message,
		})
		return uuid.Nil, false
	}
	return id, true
}

// handleReviewError handles monthly review errors and returns appropriate HTTP responses.
func handleReviewError(ctx *gin.Context, err error) {
	var reviewErr *domainerror.ReviewError
	if errors.As(err, &reviewErr) {
		ctx.JSON(statusCodeForReviewError(reviewErr.Code), dto.ErrorResponse{
			Error: reviewErr.Message,
			Code:  string(reviewErr.Code),
		})
		return
	}

	_ = ctx.Error(err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForReviewError maps monthly review error codes to HTTP status codes.
func statusCodeForReviewError(code domainerror.ReviewErrorCode) int {
	switch code {
	case domainerror.ErrCodeReviewNotFound,
		domainerror.ErrCodeCategoryReviewNotFound,
		domainerror.ErrCodeInvalidMonthCode,
		domainerror.ErrCodeReviewUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeReviewConflict:
		return http.StatusConflict
	case domainerror.ErrCodeDisallowedReviewField, domainerror.ErrCodeReviewAlreadyCompleted:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidMark,
		domainerror.ErrCodeInvalidReviewDate,
		domainerror.ErrCodeMissingReviewFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
