package locks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

// compare-and-delete so a holder whose TTL lapsed cannot drop a newer lock
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	rdb    *goredis.Client
	log    *logger.Logger
	prefix string
}

func NewRedisLocker(rdb *goredis.Client, baseLog *logger.Logger, prefix string) Locker {
	if prefix == "" {
		prefix = "maturity:lock:"
	}
	return &redisLocker{rdb: rdb, log: baseLog.With("service", "RedisLocker"), prefix: prefix}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			relCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := releaseScript.Run(relCtx, l.rdb, []string{fullKey}, token).Err(); err != nil {
				l.log.Warn("lock release failed", "key", fullKey, "error", err)
			}
		})
	}, nil
}
