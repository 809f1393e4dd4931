package locks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocalLockerExclusive(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "a", time.Minute)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := l.Acquire(ctx, "a", time.Minute); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire: got %v want ErrLocked", err)
	}
	if r, err := l.Acquire(ctx, "b", time.Minute); err != nil {
		t.Fatalf("other key should be free: %v", err)
	} else {
		r()
	}

	release()
	release()
	again, err := l.Acquire(ctx, "a", time.Minute)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	again()
}

func TestLocalLockerExpiry(t *testing.T) {
	ll := NewLocalLocker().(*localLocker)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ll.now = func() time.Time { return now }
	ctx := context.Background()

	stale, err := ll.Acquire(ctx, "k", time.Second)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	now = now.Add(2 * time.Second)

	fresh, err := ll.Acquire(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("expired lock should be acquirable: %v", err)
	}
	// the stale holder must not release the new owner's lock
	stale()
	if _, err := ll.Acquire(ctx, "k", time.Minute); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected new owner to still hold the lock, got %v", err)
	}
	fresh()
}

func TestLocalLockerConcurrent(t *testing.T) {
	l := NewLocalLocker()
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
			if _, err := l.Acquire(ctx, "submit", time.Minute); err == nil {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	close(start)
	wg.Wait()
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func TestLocalLockerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocalLocker().Acquire(ctx, "x", time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
