package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
)

// LoginAttempts counts failed logins per email in Redis and refuses further
// attempts once maxAttempts failures land inside one window.
// Key format: login:fail:<email>
type LoginAttempts struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
}

// NewLoginAttempts wraps client. Non-positive limits fall back to 5 attempts
// per 15 minutes.
func NewLoginAttempts(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginAttempts {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultLockout
	}
	return &LoginAttempts{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allowed reports whether email is still below the failure limit.
func (l *LoginAttempts) Allowed(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, key(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login attempts read: %w", err)
	}
	return n < l.maxAttempts, nil
}

// Fail records one failed attempt. The window starts at the first failure.
func (l *LoginAttempts) Fail(ctx context.Context, email string) error {
	k := key(email)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("login attempts incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("login attempts expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failures of email after a successful login.
func (l *LoginAttempts) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("login attempts reset: %w", err)
	}
	return nil
}

func key(email string) string {
	return "login:fail:" + email
}
