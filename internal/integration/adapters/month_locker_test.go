package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lifeenergy/backend/internal/application/adapter"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestRedisMonthLocker_Lock(t *testing.T) {
	ctx := context.Background()
	server, client := newTestRedis(t)
	locker := NewRedisMonthLocker(client, 10*time.Second, 5*time.Millisecond, 2)

	unlock, err := locker.Lock(ctx, "user-1:032024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !server.Exists("lock:user-1:032024") {
		t.Fatal("expected lock key to be set")
	}

	t.Run("held lock is not obtained", func(t *testing.T) {
		_, err := locker.Lock(ctx, "user-1:032024")
		if !errors.Is(err, adapter.ErrLockNotObtained) {
			t.Fatalf("expected ErrLockNotObtained, got %v", err)
		}
	})

	t.Run("other keys are independent", func(t *testing.T) {
		other, err := locker.Lock(ctx, "user-1:042024")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := other(ctx); err != nil {
			t.Fatalf("unexpected release error: %v", err)
		}
	})

	t.Run("released lock can be obtained again", func(t *testing.T) {
		if err := unlock(ctx); err != nil {
			t.Fatalf("unexpected release error: %v", err)
		}
		if server.Exists("lock:user-1:032024") {
			t.Fatal("expected lock key to be removed")
		}
		again, err := locker.Lock(ctx, "user-1:032024")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = again(ctx)
	})

	t.Run("expired lease releases quietly", func(t *testing.T) {
		short := NewRedisMonthLocker(client, time.Second, time.Millisecond, 1)
		release, err := short.Lock(ctx, "user-2:032024")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		server.FastForward(2 * time.Second)
		if err := release(ctx); err != nil {
			t.Fatalf("expected no error releasing an expired lease, got %v", err)
		}
	})
}

func TestRedisMonthLocker_Unavailable(t *testing.T) {
	server, client := newTestRedis(t)
	server.Close()

	locker := NewRedisMonthLocker(client, time.Second, time.Millisecond, 1)
	_, err := locker.Lock(context.Background(), "user-1:032024")
	if err == nil {
		t.Fatal("expected an error when redis is down")
	}
	if errors.Is(err, adapter.ErrLockNotObtained) {
		t.Fatal("expected an infrastructure error, not contention")
	}
}

func TestNoopMonthLocker_Lock(t *testing.T) {
	locker := NewNoopMonthLocker()
	for i := 0; i < 2; i++ {
		unlock, err := locker.Lock(context.Background(), "same")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := unlock(context.Background()); err != nil {
			t.Fatalf("unexpected release error: %v", err)
		}
	}
}
