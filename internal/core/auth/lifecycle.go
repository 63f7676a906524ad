package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/99minutos/account-service/internal/core/domain"
)

const defaultStoreTimeout = 3 * time.Second

// LifecycleStore is the slice of the account store the lifecycle needs.
type LifecycleStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	SetDeactivated(ctx context.Context, id int64, to bool) (bool, error)
}

// Lifecycle is the active/deactivated state machine of an account.
//
//	active ──deactivate (admin, target not admin)──▶ deactivated
//	deactivated ──restore (admin)──▶ active
type Lifecycle struct {
	store   LifecycleStore
	timeout time.Duration
}

// NewLifecycle wraps store. Every store call is bounded by timeout.
func NewLifecycle(store LifecycleStore, timeout time.Duration) *Lifecycle {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &Lifecycle{store: store, timeout: timeout}
}

// CheckActive returns nil when the account exists and is not deactivated.
// A missing or deactivated account yields domain.ErrAccountInactive; store
// failures are returned as they are.
func (l *Lifecycle) CheckActive(ctx context.Context, accountID int64) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	acct, err := l.store.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountInactive
		}
		return storeError(err)
	}
	if acct.Deactivated {
		return domain.ErrAccountInactive
	}
	return nil
}

// Transition moves the account to target on behalf of an actor holding
// actingRole. The store update is conditioned on the state observed here, so
// two concurrent transitions cannot both succeed.
func (l *Lifecycle) Transition(ctx context.Context, accountID int64, target domain.LifecycleState, actingRole domain.Role) (*domain.Account, error) {
	if actingRole != domain.RoleAdmin {
		return nil, domain.ErrInsufficientRole
	}
	if !target.Valid() {
		return nil, domain.ErrInvalidState
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	acct, err := l.store.FindByID(ctx, accountID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := checkTransition(acct, target); err != nil {
		return nil, err
	}

	deactivate := target == domain.StateDeactivated
	swapped, err := l.store.SetDeactivated(ctx, accountID, deactivate)
	if err != nil {
		return nil, storeError(err)
	}
	if !swapped {
		// Lost a race with another transition: report what the store holds now.
		current, err := l.store.FindByID(ctx, accountID)
		if err != nil {
			return nil, storeError(err)
		}
		if err := checkTransition(current, target); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("transition account %d: %w", accountID, domain.ErrStoreUnavailable)
	}

	acct.Deactivated = deactivate
	return acct, nil
}

func checkTransition(acct *domain.Account, target domain.LifecycleState) error {
	switch target {
	case domain.StateDeactivated:
		if acct.Role == domain.RoleAdmin {
			return domain.ErrAdminImmune
		}
		if acct.Deactivated {
			return domain.ErrAlreadyDeactivated
		}
	case domain.StateActive:
		if !acct.Deactivated {
			return domain.ErrAlreadyActive
		}
	}
	return nil
}

// storeError marks deadline and cancellation failures as retryable store
// unavailability so they are never mistaken for an authorization decision.
func storeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}
