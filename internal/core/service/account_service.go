package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/auth"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// LifecycleTransitioner moves an account between active and deactivated.
type LifecycleTransitioner interface {
	Transition(ctx context.Context, accountID int64, target domain.LifecycleState, actingRole domain.Role) (*domain.Account, error)
}

// AccountService implements profile management and the admin lifecycle.
type AccountService struct {
	bounded
	accounts  ports.AccountRepository
	posts     ports.PostRepository
	lifecycle LifecycleTransitioner
	audit     ports.AuditRecorder
	log       zerolog.Logger
	now       func() time.Time
}

func NewAccountService(
	accounts ports.AccountRepository,
	posts ports.PostRepository,
	lifecycle LifecycleTransitioner,
	audit ports.AuditRecorder,
	log zerolog.Logger,
	opts ...Option,
) *AccountService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &AccountService{
		bounded:   newBounded(opts),
		accounts:  accounts,
		posts:     posts,
		lifecycle: lifecycle,
		audit:     audit,
		log:       log,
		now:       time.Now,
	}
}

// Profile returns the caller's own account.
func (s *AccountService) Profile(ctx context.Context, p domain.Principal) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, p.AccountID)
}

// ReplaceProfile overwrites every profile attribute of the caller's account.
func (s *AccountService) ReplaceProfile(ctx context.Context, p domain.Principal, profile domain.Profile) (*domain.Account, error) {
	return s.accounts.UpdateProfile(ctx, p.AccountID, profile)
}

// PatchProfile changes only the attributes present in patch.
func (s *AccountService) PatchProfile(ctx context.Context, p domain.Principal, patch domain.ProfilePatch) (*domain.Account, error) {
	acct, err := s.accounts.FindByID(ctx, p.AccountID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return acct, nil
	}
	return s.accounts.UpdateProfile(ctx, p.AccountID, patch.Apply(acct.Profile))
}

// Deactivate soft-deletes a non-admin account.
func (s *AccountService) Deactivate(ctx context.Context, p domain.Principal, accountID int64) (*domain.Account, error) {
	return s.transition(ctx, p, accountID, domain.StateDeactivated, ports.AuditDeactivate)
}

// Restore undoes a soft delete.
func (s *AccountService) Restore(ctx context.Context, p domain.Principal, accountID int64) (*domain.Account, error) {
	return s.transition(ctx, p, accountID, domain.StateActive, ports.AuditRestore)
}

func (s *AccountService) transition(ctx context.Context, p domain.Principal, accountID int64, target domain.LifecycleState, action string) (*domain.Account, error) {
	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	acct, err := s.lifecycle.Transition(ctx, accountID, target, p.Role)
	if err != nil {
		s.log.Info().Err(err).Int64("account_id", accountID).Int64("actor_id", p.AccountID).
			Str("action", action).Msg("lifecycle transition refused")
		return nil, err
	}

	s.audit.Record(ports.AuditEvent{AccountID: accountID, ActorID: p.AccountID, Action: action, At: s.now().UTC()})
	s.log.Info().Int64("account_id", accountID).Int64("actor_id", p.AccountID).
		Str("action", action).Msg("lifecycle transition applied")
	return acct, nil
}

// Purge hard-deletes a deactivated, non-admin account, then its posts. The
// delete itself is conditioned on that state, so an undo or role change
// landing after the check leaves the account in place.
func (s *AccountService) Purge(ctx context.Context, p domain.Principal, accountID int64) error {
	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.checkPurgeable(ctx, accountID); err != nil {
		return err
	}

	deleted, err := s.accounts.DeleteDeactivated(ctx, accountID)
	if err != nil {
		return storeError(err)
	}
	if !deleted {
		// Lost a race: report what the store holds now.
		if err := s.checkPurgeable(ctx, accountID); err != nil {
			return err
		}
		return fmt.Errorf("purge account %d: %w", accountID, domain.ErrStoreUnavailable)
	}
	s.audit.Record(ports.AuditEvent{AccountID: accountID, ActorID: p.AccountID, Action: ports.AuditPurge, At: s.now().UTC()})

	n, err := s.posts.DeleteByOwner(ctx, accountID)
	if err != nil {
		s.log.Error().Err(err).Int64("account_id", accountID).Msg("account purged but its posts were not removed")
		return fmt.Errorf("purge account posts: %w", err)
	}
	s.log.Info().Int64("account_id", accountID).Int64("actor_id", p.AccountID).
		Int64("posts_removed", n).Msg("account purged")
	return nil
}

func (s *AccountService) checkPurgeable(ctx context.Context, accountID int64) error {
	ctx, cancel := s.lookup(ctx)
	defer cancel()

	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return storeError(err)
	}
	if acct.Role == domain.RoleAdmin {
		return domain.ErrAdminImmune
	}
	if !acct.Deactivated {
		return domain.ErrNotDeactivated
	}
	return nil
}
