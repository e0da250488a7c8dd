package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/lifeenergy/backend/internal/application/adapter"
)

// redisMonthLocker implements adapter.MonthLocker with a redis lease per key.
type redisMonthLocker struct {
	locker  *redislock.Client
	ttl     time.Duration
	backoff time.Duration
	retries int
}

// NewRedisMonthLocker creates a month locker backed by redis.
// A held lease expires after ttl; Lock retries every backoff, at most retries times.
func NewRedisMonthLocker(client redis.UniversalClient, ttl, backoff time.Duration, retries int) adapter.MonthLocker {
	return &redisMonthLocker{
		locker:  redislock.New(client),
		ttl:     ttl,
		backoff: backoff,
		retries: retries,
	}
}

// Lock obtains the lease for key.
func (l *redisMonthLocker) Lock(ctx context.Context, key string) (adapter.UnlockFunc, error) {
	lock, err := l.locker.Obtain(ctx, "lock:"+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", adapter.ErrLockNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}

// noopMonthLocker grants every lock immediately. Used when redis is disabled;
// the review store's uniqueness still prevents duplicates.
type noopMonthLocker struct{}

// NewNoopMonthLocker creates a month locker that never blocks.
func NewNoopMonthLocker() adapter.MonthLocker {
	return noopMonthLocker{}
}

// Lock always succeeds.
func (noopMonthLocker) Lock(context.Context, string) (adapter.UnlockFunc, error) {
	return func(context.Context) error { return nil }, nil
}
