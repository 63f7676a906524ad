package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// AccountService covers profile management and administrative lifecycle.
type AccountService interface {
	Profile(ctx context.Context, p domain.Principal) (*domain.Account, error)
	ReplaceProfile(ctx context.Context, p domain.Principal, profile domain.Profile) (*domain.Account, error)
	PatchProfile(ctx context.Context, p domain.Principal, patch domain.ProfilePatch) (*domain.Account, error)
	Deactivate(ctx context.Context, p domain.Principal, accountID int64) (*domain.Account, error)
	Restore(ctx context.Context, p domain.Principal, accountID int64) (*domain.Account, error)
	Purge(ctx context.Context, p domain.Principal, accountID int64) error
}
