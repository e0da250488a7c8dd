// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lifeenergy/backend/config"
	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/application/usecase/monthlyreview"
	"github.com/lifeenergy/backend/internal/infra/server/router"
	"github.com/lifeenergy/backend/internal/integration/adapters"
	"github.com/lifeenergy/backend/internal/integration/entrypoint/controller"
	"github.com/lifeenergy/backend/internal/integration/entrypoint/middleware"
	"github.com/lifeenergy/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config             *config.Config
	DB                 *gorm.DB
	Router             *router.Router
	TokenService       adapter.TokenService
	RebuildRateLimiter *middleware.RateLimiter
}

// Options carries optional collaborators for NewInjector.
type Options struct {
	// Redis backs the cross-process creation lock. Nil selects the in-process no-op lock.
	Redis redis.UniversalClient
	// DBHealthChecker and RedisHealthChecker feed the health endpoint.
	DBHealthChecker    controller.HealthChecker
	RedisHealthChecker controller.HealthChecker
	// Now overrides the clock used to pick the current month.
	Now func() time.Time
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)
	reviewRepo := persistence.NewReviewRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	var locker adapter.MonthLocker
	if opts.Redis != nil {
		locker = adapters.NewRedisMonthLocker(
			opts.Redis,
			cfg.Review.CreateLockTTL,
			cfg.Review.CreateLockRetry,
			cfg.Review.CreateLockRetries,
		)
	} else {
		slog.Warn("Redis not configured, monthly review creation relies on the database unique index only")
		locker = adapters.NewNoopMonthLocker()
	}

	// Create the aggregation engine
	aggregator := monthlyreview.NewAggregator(ledgerRepo, reviewRepo, userRepo)
	resolver := monthlyreview.NewMonthResolver(reviewRepo, aggregator, locker)

	// Create monthly review use cases
	getOrCreateUseCase := monthlyreview.NewGetOrCreateMonthUseCase(resolver)
	if opts.Now != nil {
		getOrCreateUseCase = getOrCreateUseCase.WithClock(opts.Now)
	}
	monthlyReviewController := controller.NewMonthlyReviewController(
		monthlyreview.NewListReviewsUseCase(reviewRepo),
		getOrCreateUseCase,
		monthlyreview.NewGetByMonthCodeUseCase(resolver),
		monthlyreview.NewGetReviewUseCase(reviewRepo),
		monthlyreview.NewUpdateMetadataUseCase(reviewRepo),
		monthlyreview.NewRebuildMonthUseCase(reviewRepo, aggregator),
		monthlyreview.NewToggleCompleteUseCase(reviewRepo),
	)

	// Create category breakdown use cases
	monthlyCategoryReviewController := controller.NewMonthlyCategoryReviewController(
		monthlyreview.NewGetCategoryReviewUseCase(reviewRepo),
		monthlyreview.NewUpdateCategoryReflectionUseCase(reviewRepo),
	)

	healthController := controller.NewHealthController(opts.DBHealthChecker, opts.RedisHealthChecker)

	// Create middleware
	rebuildRateLimiter := middleware.NewRateLimiterWithConfig(cfg.Review.RebuildRateLimit, cfg.Review.RebuildRateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, monthlyReviewController, monthlyCategoryReviewController, rebuildRateLimiter, authMiddleware)

	return &Injector{
		Config:             cfg,
		DB:                 db,
		Router:             r,
		TokenService:       tokenService,
		RebuildRateLimiter: rebuildRateLimiter,
	}
}
