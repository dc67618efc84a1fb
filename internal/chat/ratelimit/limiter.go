// Package ratelimit caps how many chat messages one client may send per
// fixed window, counting in Redis.
package ratelimit

import (
	"context"
	"time"

	"github.com/eumatoliveira/leanhealth-websit/internal/common/errors"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chat:ratelimit:"

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter is a fixed-window counter. A nil *Limiter allows everything.
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	logger logger.Logger
}

func New(client *redis.Client, limit int, window time.Duration, log logger.Logger) *Limiter {
	return &Limiter{
		redis:  client,
		limit:  limit,
		window: window,
		logger: log.WithFields(map[string]interface{}{"component": "ratelimit"}),
	}
}

// Key is the Redis key counting requests for clientID.
func Key(clientID string) string {
	return keyPrefix + clientID
}

// Allow counts one request for clientID. Redis failures are logged and the
// request is allowed. A counter left without an expiry, e.g. when a previous
// EXPIRE failed, gets one on the next call.
func (l *Limiter) Allow(ctx context.Context, clientID string) Decision {
	if l == nil || l.limit <= 0 {
		return Decision{Allowed: true, Remaining: -1}
	}

	key := Key(clientID)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		l.failOpen(clientID, err)
		return Decision{Allowed: true, Remaining: -1}
	}

	count := incr.Val()
	remaining := ttl.Val()

	// TTL is -1 when the key has no expiry
	if remaining < 0 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			l.failOpen(clientID, err)
		}
		remaining = l.window
	}

	if count <= int64(l.limit) {
		return Decision{Allowed: true, Remaining: l.limit - int(count)}
	}

	if remaining == 0 {
		remaining = time.Second
	}
	return Decision{Allowed: false, Remaining: 0, RetryAfter: remaining}
}

func (l *Limiter) failOpen(clientID string, err error) {
	stdErr := errors.NewRateLimitCheckFailedError(err)
	l.logger.Warn("rate limit check failed, allowing request", map[string]interface{}{
		"client":    clientID,
		"errorCode": string(stdErr.Code),
		"error":     err,
	})
}
