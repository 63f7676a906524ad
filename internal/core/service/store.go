package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/99minutos/account-service/internal/core/domain"
)

const defaultStoreTimeout = 3 * time.Second

// Option configures a service at construction time.
type Option func(*bounded)

// WithStoreTimeout bounds the identity and ownership lookups a service makes
// against its stores. Non-positive values keep the default.
func WithStoreTimeout(d time.Duration) Option {
	return func(b *bounded) {
		if d > 0 {
			b.storeTimeout = d
		}
	}
}

// bounded carries the per-lookup deadline shared by the services.
type bounded struct {
	storeTimeout time.Duration
}

func newBounded(opts []Option) bounded {
	b := bounded{storeTimeout: defaultStoreTimeout}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b bounded) lookup(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.storeTimeout)
}

// storeError reports a lookup cut short by its deadline as a retryable store
// failure rather than a decision about the caller.
func storeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}
