package auth

import "github.com/99minutos/account-service/internal/core/domain"

// RequireRole succeeds only when the principal holds exactly role.
func RequireRole(p domain.Principal, role domain.Role) error {
	if p.Role != role {
		return domain.ErrInsufficientRole
	}
	return nil
}

// RequireOwnership succeeds when the principal owns the resource or is an
// administrator.
func RequireOwnership(p domain.Principal, ownerID int64) error {
	if (p.AccountID > 0 && p.AccountID == ownerID) || p.Role == domain.RoleAdmin {
		return nil
	}
	return domain.ErrNotOwner
}
