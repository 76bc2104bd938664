package service

import (
	"context"
	"fmt"
	"time"

	"hotnews-aggregator/pkg/common"

	"github.com/redis/go-redis/v9"
)

// RefreshLocker serializes the delete+insert critical section per
// (platform, fetched date). Acquire returns false when another refresh cycle
// already holds the pair.
type RefreshLocker interface {
	Acquire(ctx context.Context, platformID, fetchedDate string) (bool, error)
	Release(ctx context.Context, platformID, fetchedDate string)
}

// NewRedisRefreshLocker creates a Redis-backed locker. The TTL guards against
// a crashed cycle holding a lock forever.
func NewRedisRefreshLocker(client *redis.Client, ttl time.Duration) RefreshLocker {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &redisRefreshLocker{client: client, ttl: ttl}
}

type redisRefreshLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func lockKey(platformID, fetchedDate string) string {
	return fmt.Sprintf(common.RedisKeyRefreshLock, platformID, fetchedDate)
}

// Acquire takes the lock with SET NX.
func (l *redisRefreshLocker) Acquire(ctx context.Context, platformID, fetchedDate string) (bool, error) {
	return l.client.SetNX(ctx, lockKey(platformID, fetchedDate), 1, l.ttl).Result()
}

// Release drops the lock; best effort, the TTL covers failures here.
func (l *redisRefreshLocker) Release(ctx context.Context, platformID, fetchedDate string) {
	l.client.Del(ctx, lockKey(platformID, fetchedDate))
}
