package locks

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

// newTestRedisLocker returns a locker on TEST_REDIS_ADDR with a prefix unique to the
// test, skipping when no server is configured.
func newTestRedisLocker(t *testing.T) (Locker, *goredis.Client, string) {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		t.Fatalf("redis ping %s: %v", addr, err)
	}
	prefix := "maturity:test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		keys, _ := rdb.Keys(context.Background(), prefix+"*").Result()
		if len(keys) > 0 {
			_ = rdb.Del(context.Background(), keys...).Err()
		}
		_ = rdb.Close()
	})
	return NewRedisLocker(rdb, testLogger(t), prefix), rdb, prefix
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestRedisLockerExclusive(t *testing.T) {
	l, rdb, prefix := newTestRedisLocker(t)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "a", time.Minute)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := l.Acquire(ctx, "a", time.Minute); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire: got %v want ErrLocked", err)
	}
	if ttl := rdb.PTTL(ctx, prefix+"a").Val(); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("lock ttl = %v", ttl)
	}

	release()
	release()
	if n := rdb.Exists(ctx, prefix+"a").Val(); n != 0 {
		t.Fatalf("release left the key behind")
	}
	again, err := l.Acquire(ctx, "a", time.Minute)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	again()
}

func TestRedisLockerStaleReleaseKeepsNewOwner(t *testing.T) {
	l, rdb, prefix := newTestRedisLocker(t)
	ctx := context.Background()

	stale, err := l.Acquire(ctx, "k", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for rdb.Exists(ctx, prefix+"k").Val() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("lock did not expire")
		}
		time.Sleep(20 * time.Millisecond)
	}

	fresh, err := l.Acquire(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("expired lock should be acquirable: %v", err)
	}
	owner := rdb.Get(ctx, prefix+"k").Val()

	stale()
	if got := rdb.Get(ctx, prefix+"k").Val(); got != owner {
		t.Fatalf("stale release dropped the new owner's lock (value %q)", got)
	}
	if _, err := l.Acquire(ctx, "k", time.Minute); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected new owner to still hold the lock, got %v", err)
	}
	fresh()
	if n := rdb.Exists(ctx, prefix+"k").Val(); n != 0 {
		t.Fatalf("owner release left the key behind")
	}
}

func TestRedisLockerConcurrent(t *testing.T) {
	l, _, _ := newTestRedisLocker(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		winners int32
		start   = make(chan struct{})
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := l.Acquire(ctx, "submit", time.Minute)
			switch {
			case err == nil:
				atomic.AddInt32(&winners, 1)
			case !errors.Is(err, ErrLocked):
				t.Errorf("Acquire: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func TestRedisLockerUnreachable(t *testing.T) {
	// nothing listens on port 1
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	_, err := NewRedisLocker(rdb, testLogger(t), "").Acquire(context.Background(), "k", time.Second)
	if err == nil {
		t.Fatalf("expected an error from an unreachable server")
	}
	if errors.Is(err, ErrLocked) {
		t.Fatalf("backend failure must not read as contention: %v", err)
	}
}
