package bookings

import (
	"context"
	"fmt"
	"time"

	"villa/internal/shared/constants"
	"villa/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const availabilityLockKey = constants.LOCK_KEY_AVAILABILITY

// AvailabilityLock serializes the check-then-write sequences that create or accept bookings
type AvailabilityLock interface {
	// Acquire blocks until the lock is held or ctx is done. The returned func releases it.
	Acquire(ctx context.Context) (func(), error)
}

// Lua script releasing the lock only when we still own it
const luaReleaseLock = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

type redisLock struct {
	client  *redis.Client
	ttl     time.Duration
	retry   time.Duration
	timeout time.Duration
	logger  *logger.Logger
}

// NewRedisLock returns a lock shared by every API instance using the same Redis
func NewRedisLock(client *redis.Client, ttl time.Duration) AvailabilityLock {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &redisLock{
		client:  client,
		ttl:     ttl,
		retry:   50 * time.Millisecond,
		timeout: ttl,
		logger:  logger.GetDefault(),
	}
}

func (l *redisLock) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.timeout)

	for {
		ok, err := l.client.SetNX(ctx, availabilityLockKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire availability lock: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	return func() {
		// release even if the request context was cancelled meanwhile
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		released, err := l.client.Eval(releaseCtx, luaReleaseLock, []string{availabilityLockKey}, token).Int()
		switch {
		case err != nil:
			l.logger.WarnContext(ctx, "Failed to release availability lock, it stays held until its TTL",
				"key", availabilityLockKey, "ttl", l.ttl.String(), "error", err.Error())
		case released == 0:
			l.logger.WarnContext(ctx, "Availability lock expired before release", "key", availabilityLockKey, "ttl", l.ttl.String())
		}
	}, nil
}

type localLock struct {
	sem chan struct{}
}

// NewLocalLock returns an in-process lock, enough for a single API instance
func NewLocalLock() AvailabilityLock {
	return &localLock{sem: make(chan struct{}, 1)}
}

func (l *localLock) Acquire(ctx context.Context) (func(), error) {
	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
