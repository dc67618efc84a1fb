package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eumatoliveira/leanhealth-websit/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, limit, window, logger.NewTestLogger(t)), mr
}

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l, mr := newMiniredisLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := l.Allow(ctx, "session-1")
		assert.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := l.Allow(ctx, "session-1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)

	assert.Equal(t, time.Minute, mr.TTL(Key("session-1")))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newMiniredisLimiter(t, 1, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "a").Allowed)
	assert.False(t, l.Allow(ctx, "a").Allowed)
	assert.True(t, l.Allow(ctx, "b").Allowed)
}

func TestLimiter_WindowResets(t *testing.T) {
	l, mr := newMiniredisLimiter(t, 1, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "a").Allowed)
	assert.False(t, l.Allow(ctx, "a").Allowed)

	mr.FastForward(61 * time.Second)

	assert.True(t, l.Allow(ctx, "a").Allowed)
}

func TestLimiter_CounterWithoutExpiryHeals(t *testing.T) {
	l, mr := newMiniredisLimiter(t, 2, time.Minute)
	ctx := context.Background()

	// a counter stranded over the limit with no TTL
	require.NoError(t, mr.Set(Key("a"), "5"))
	require.Equal(t, time.Duration(0), mr.TTL(Key("a")))

	d := l.Allow(ctx, "a")
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)
	assert.Equal(t, time.Minute, mr.TTL(Key("a")))

	mr.FastForward(24 * time.Hour)

	assert.True(t, l.Allow(ctx, "a").Allowed)
}

func expectCount(mock redismock.ClientMock, key string, count int64, ttl time.Duration) {
	mock.ExpectTxPipeline()
	mock.ExpectIncr(key).SetVal(count)
	mock.ExpectTTL(key).SetVal(ttl)
	mock.ExpectTxPipelineExec()
}

func TestLimiter_FailsOpen(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := New(client, 1, time.Minute, logger.NewTestLogger(t))

	mock.ExpectTxPipeline()
	mock.ExpectIncr(Key("a")).SetErr(errors.New("connection refused"))

	d := l.Allow(context.Background(), "a")
	assert.True(t, d.Allowed)
	assert.Equal(t, -1, d.Remaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLimiter_ExpireFailureIsRetriedOnNextCall(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := New(client, 1, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	expectCount(mock, Key("a"), 1, -1)
	mock.ExpectExpire(Key("a"), time.Minute).SetErr(errors.New("timeout"))

	d := l.Allow(ctx, "a")
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	// still no TTL, so the next call sets it again
	expectCount(mock, Key("a"), 2, -1)
	mock.ExpectExpire(Key("a"), time.Minute).SetVal(true)

	d = l.Allow(ctx, "a")
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLimiter_ExistingTTLIsKept(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := New(client, 1, time.Minute, logger.NewTestLogger(t))

	expectCount(mock, Key("a"), 3, 17*time.Second)

	d := l.Allow(context.Background(), "a")
	assert.False(t, d.Allowed)
	assert.Equal(t, 17*time.Second, d.RetryAfter)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLimiter_NilAllowsEverything(t *testing.T) {
	var l *Limiter

	d := l.Allow(context.Background(), "a")
	assert.True(t, d.Allowed)
}
