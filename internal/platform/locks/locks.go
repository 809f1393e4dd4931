package locks

import (
	"context"
	"errors"
	"time"
)

// ErrLocked is returned when another holder owns the key.
var ErrLocked = errors.New("lock is held")

// Locker hands out non-blocking, expiring, keyed locks. The release func is
// safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
