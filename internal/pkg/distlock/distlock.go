package distlock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistLock is the interface for distributed locking.
// Implementations must be safe for use from a single goroutine;
// concurrent use across goroutines requires separate lock instances.
type DistLock interface {
	// Acquire tries to acquire the lock. Returns true if successful.
	Acquire(ctx context.Context) (bool, error)
	// Release releases the lock if we still own it.
	Release(ctx context.Context) error
}

// Factory hands out a fresh lock for a key.
type Factory func(key string) DistLock

// NewFactory returns a Factory handing out Redis locks, or nil when Redis is
// not configured. Callers without a lock rely on database constraints.
func NewFactory(redisClient *redis.Client, ttl time.Duration) Factory {
	if redisClient == nil {
		return nil
	}
	return func(key string) DistLock {
		return NewRedisLock(redisClient, key, ttl)
	}
}
