// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeenergy/backend/internal/integration/entrypoint/controller"
	"github.com/lifeenergy/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                          *gin.Engine
	healthController                *controller.HealthController
	monthlyReviewController         *controller.MonthlyReviewController
	monthlyCategoryReviewController *controller.MonthlyCategoryReviewController
	rebuildRateLimiter              *middleware.RateLimiter
	authMiddleware                  *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	monthlyReviewController *controller.MonthlyReviewController,
	monthlyCategoryReviewController *controller.MonthlyCategoryReviewController,
	rebuildRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:                healthController,
		monthlyReviewController:         monthlyReviewController,
		monthlyCategoryReviewController: monthlyCategoryReviewController,
		rebuildRateLimiter:              rebuildRateLimiter,
		authMiddleware:                  authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authMiddleware == nil {
		return
	}

	// Monthly review routes (require authentication)
	if r.monthlyReviewController != nil {
		reviews := v1.Group("/monthly-reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.GET("", r.monthlyReviewController.List)
			reviews.POST("", r.monthlyReviewController.GetOrCreate)
			reviews.GET("/by-month-code/:month_code", r.monthlyReviewController.GetByMonthCode)
			reviews.GET("/:id", r.monthlyReviewController.Get)
			reviews.PATCH("/:id", r.monthlyReviewController.Update)
			reviews.PATCH("/:id/toggle-complete", r.monthlyReviewController.ToggleComplete)

			rebuild := []gin.HandlerFunc{r.monthlyReviewController.Rebuild}
			if r.rebuildRateLimiter != nil {
				rebuild = append([]gin.HandlerFunc{r.rebuildRateLimiter.Middleware(middleware.UserKey)}, rebuild...)
			}
			reviews.POST("/:id/rebuild", rebuild...)
		}
	}

	// Category breakdown routes (require authentication)
	if r.monthlyCategoryReviewController != nil {
		categoryReviews := v1.Group("/monthly-category-reviews")
		categoryReviews.Use(r.authMiddleware.Authenticate())
		{
			categoryReviews.GET("/:id", r.monthlyCategoryReviewController.Get)
			categoryReviews.PATCH("/:id", r.monthlyCategoryReviewController.Update)
		}
	}
}
