package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
//
// Implementations return domain.ErrAccountNotFound for missing records and
// domain.ErrStoreUnavailable when the store times out or cannot be reached.
type AccountRepository interface {
	// Create inserts a new account, assigns its ID and returns it.
	// A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// UpdateProfile replaces the profile attributes only.
	UpdateProfile(ctx context.Context, id int64, profile domain.Profile) (*domain.Account, error)
	// SetDeactivated flips the soft-delete flag from !to to `to` atomically.
	// It reports false when the precondition (current flag == !to, and for
	// deactivation role != admin) did not hold.
	SetDeactivated(ctx context.Context, id int64, to bool) (bool, error)
	Delete(ctx context.Context, id int64) error
	// DeleteDeactivated removes the account only while it is deactivated and
	// not an admin. It reports false when that precondition did not hold.
	DeleteDeactivated(ctx context.Context, id int64) (bool, error)
}
