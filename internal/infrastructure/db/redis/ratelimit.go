package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterWindow = time.Minute

// RateLimiter applies a fixed-window cap on driver location updates, keyed by
// the driver's subject. A limit of 0 disables all checks, which keeps burst
// handling a deployment tunable rather than a hidden default.
// Key format: ratelimit:<subject>:<window_start_unix>
type RateLimiter struct {
	client *redis.Client
	limit  int
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client, limit int) *RateLimiter {
	return &RateLimiter{client: client, limit: limit}
}

// Allow reports whether the subject may submit another update this window.
// A Redis error fails open: the update is allowed and the error returned for
// logging, because dropping live updates over a limiter outage is worse than
// briefly losing the cap.
func (l *RateLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	key := l.key(subject, time.Now())
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("ratelimit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, limiterWindow).Err(); err != nil {
			return true, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}

func (l *RateLimiter) key(subject string, now time.Time) string {
	window := now.Unix() / int64(limiterWindow.Seconds())
	return fmt.Sprintf("ratelimit:%s:%d", subject, window)
}
