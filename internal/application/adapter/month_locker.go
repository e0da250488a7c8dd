// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"
)

// ErrLockNotObtained is returned when a lock is still held by someone else after all retries.
var ErrLockNotObtained = errors.New("lock not obtained")

// UnlockFunc releases a lock obtained from a MonthLocker.
type UnlockFunc func(ctx context.Context) error

// MonthLocker serializes creation of a user's monthly review across processes.
type MonthLocker interface {
	// Lock obtains the lock for key. It returns an error wrapping ErrLockNotObtained
	// when another holder keeps the lock past the retry budget.
	Lock(ctx context.Context, key string) (UnlockFunc, error)
}
