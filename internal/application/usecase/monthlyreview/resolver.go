package monthlyreview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/lifeenergy/backend/internal/application/adapter"
	"github.com/lifeenergy/backend/internal/domain/entity"
	domainerror "github.com/lifeenergy/backend/internal/domain/error"
	"github.com/lifeenergy/backend/internal/domain/valueobject"
)

// ResolveResult is the outcome of resolving a month's review.
type ResolveResult struct {
	Review  *entity.MonthlyReview
	Created bool
}

// MonthResolver finds a user's review for a month, creating and populating it when absent.
// An existing review is returned as stored; only a rebuild recomputes it.
type MonthResolver struct {
	reviewRepo adapter.ReviewRepository
	aggregator *Aggregator
	locker     adapter.MonthLocker
	inflight   singleflight.Group
}

// NewMonthResolver creates a new MonthResolver instance.
func NewMonthResolver(reviewRepo adapter.ReviewRepository, aggregator *Aggregator, locker adapter.MonthLocker) *MonthResolver {
	return &MonthResolver{
		reviewRepo: reviewRepo,
		aggregator: aggregator,
		locker:     locker,
	}
}

// FindOrCreate resolves the user's review for window.
// Concurrent calls for the same user and month inside this process share one resolution;
// across processes they are serialized by the month locker and, as a last resort,
// by the store's (user, month code) uniqueness.
// The shared resolution outlives any single caller: a cancelled caller returns early
// while the others still receive the review.
func (r *MonthResolver) FindOrCreate(ctx context.Context, userID uuid.UUID, window valueobject.MonthWindow) (*ResolveResult, error) {
	key := lockKey(userID, window.Code)
	sharedCtx := context.WithoutCancel(ctx)

	ch := r.inflight.DoChan(key, func() (interface{}, error) {
		return r.findOrCreate(sharedCtx, userID, window, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*ResolveResult), nil
	}
}

func (r *MonthResolver) findOrCreate(ctx context.Context, userID uuid.UUID, window valueobject.MonthWindow, key string) (*ResolveResult, error) {
	existing, err := r.find(ctx, userID, window.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ResolveResult{Review: existing}, nil
	}

	unlock, err := r.locker.Lock(ctx, key)
	if err != nil {
		slog.Warn("Proceeding without monthly review creation lock",
			"userID", userID,
			"monthCode", window.Code,
			"error", err,
		)
	} else {
		defer func() {
			if releaseErr := unlock(ctx); releaseErr != nil {
				slog.Warn("Failed to release monthly review creation lock",
					"userID", userID,
					"monthCode", window.Code,
					"error", releaseErr,
				)
			}
		}()

		// Another process may have created the review while we waited.
		existing, err = r.find(ctx, userID, window.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ResolveResult{Review: existing}, nil
		}
	}

	review := entity.NewMonthlyReview(userID, window.Start, window.Code)
	if err := r.reviewRepo.Create(ctx, review); err != nil {
		if !errors.Is(err, domainerror.ErrReviewConflict) {
			return nil, fmt.Errorf("failed to create monthly review: %w", err)
		}

		// Lost the insert race: the winner's row is the review.
		existing, findErr := r.find(ctx, userID, window.Code)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			return nil, domainerror.NewReviewError(
				domainerror.ErrCodeReviewConflict,
				"monthly review for this month is being created, please retry",
				err,
			)
		}
		slog.Info("Monthly review created concurrently, using existing row",
			"userID", userID,
			"monthCode", window.Code,
			"reviewID", existing.ID,
		)
		return &ResolveResult{Review: existing}, nil
	}

	if err := r.aggregator.Refresh(ctx, review); err != nil {
		return nil, err
	}

	slog.Info("Monthly review created",
		"userID", userID,
		"monthCode", window.Code,
		"reviewID", review.ID,
	)

	return &ResolveResult{Review: review, Created: true}, nil
}

// find returns nil without error when the review does not exist.
func (r *MonthResolver) find(ctx context.Context, userID uuid.UUID, monthCode string) (*entity.MonthlyReview, error) {
	review, err := r.reviewRepo.FindByMonthCode(ctx, userID, monthCode)
	if err != nil {
		if errors.Is(err, domainerror.ErrReviewNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find monthly review: %w", err)
	}
	return review, nil
}

func lockKey(userID uuid.UUID, monthCode string) string {
	return "monthly-review:" + userID.String() + ":" + monthCode
}
