package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/maturity-backend/internal/clients/redis"
	"github.com/yungbote/maturity-backend/internal/platform/locks"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/platform/objectstore"
)

type Clients struct {
	Redis  *goredis.Client
	Locker locks.Locker
	Store  objectstore.Store
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Redis (submit lock); without REDIS_ADDR the lock is per process
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		out.Redis = rdb
		out.Locker = locks.NewRedisLocker(rdb, log, "maturity:lock:")
	} else {
		log.Warn("REDIS_ADDR not set; submit lock is process-local")
		out.Locker = locks.NewLocalLocker()
	}

	// Report exports
	storeCfg, err := objectstore.ResolveConfigFromEnv()
	if err != nil {
		log.Warn("Object storage disabled; report export unavailable", "error", err)
		return out, nil
	}
	store, err := objectstore.New(ctx, log, storeCfg)
	if err != nil {
		log.Warn("Object storage init failed; report export unavailable", "mode", storeCfg.Mode, "error", err)
		return out, nil
	}
	out.Store = store
	return out, nil
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
