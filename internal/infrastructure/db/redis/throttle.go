package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts failed authentication attempts per username in a
// rolling window. Key format: login_attempts:<username>, expiring after the
// window so a quiet user is forgiven automatically.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given client.
// maxAttempts <= 0 and window <= 0 fall back to 5 attempts per 15 minutes.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Exceeded reports whether the username has exhausted its attempt budget.
func (t *LoginThrottle) Exceeded(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= int64(t.maxAttempts), nil
}

// RecordFailure increments the counter and refreshes the window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) error {
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, t.key(username))
	pipe.Expire(ctx, t.key(username), t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *LoginThrottle) key(username string) string {
	return "login_attempts:" + username
}
