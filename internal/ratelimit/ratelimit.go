// Package ratelimit counts requests per key in fixed windows, in Redis when
// configured and in process memory otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/utils/collectionutils"
)

// Counter increments the hit count of key for the current window and returns it.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisClient is the subset of *redis.Client the limiter needs.
type RedisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

type RedisCounter struct {
	client RedisClient
	prefix string
}

func NewRedisCounter(client RedisClient, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

func (counter *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := fmt.Sprintf("rl:%s:%s", counter.prefix, key)
	count, err := counter.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, xerrors.New(err)
	}
	// the first hit opens the window; later hits re-arm a key left without a TTL
	if count > 1 {
		ttl, err := counter.client.TTL(ctx, redisKey).Result()
		if err != nil {
			return 0, xerrors.New(err)
		}
		if ttl >= 0 {
			return count, nil
		}
	}
	if err := counter.client.Expire(ctx, redisKey, window).Err(); err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

const memorySweepThreshold = 10_000

type MemoryCounter struct {
	windows *collectionutils.SafeMap[string, memoryWindow]
	now     func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: collectionutils.New[string, memoryWindow](),
		now:     time.Now,
	}
}

func (counter *MemoryCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := counter.now()
	if counter.windows.Len() > memorySweepThreshold {
		counter.windows.DeleteIf(func(_ string, w memoryWindow) bool { return !now.Before(w.resetAt) })
	}

	current := counter.windows.Compute(key, func(w memoryWindow, exists bool) memoryWindow {
		if !exists || !now.Before(w.resetAt) {
			return memoryWindow{count: 1, resetAt: now.Add(window)}
		}
		w.count++
		return w
	})
	return current.count, nil
}

type Limiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	log     *slog.Logger
}

func NewLimiter(counter Counter, limit int, window time.Duration, log *slog.Logger) *Limiter {
	return &Limiter{counter: counter, limit: int64(limit), window: window, log: log}
}

func (limiter *Limiter) Window() time.Duration {
	return limiter.window
}

// Allow reports whether key is still under the limit. A failing counter lets
// the request through.
func (limiter *Limiter) Allow(ctx context.Context, key string) bool {
	count, err := limiter.counter.Hit(ctx, key, limiter.window)
	if err != nil {
		limiter.log.Warn("Rate limit counter unavailable", "key", key, "error", err.Error())
		return true
	}
	return count <= limiter.limit
}
