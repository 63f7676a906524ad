package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/99minutos/account-service/internal/core/domain"
)

func TestLifecycle_Transition(t *testing.T) {
	cases := []struct {
		name        string
		account     domain.Account
		target      domain.LifecycleState
		acting      domain.Role
		wantErr     error
		wantFlag    bool
		wantSetCall bool
	}{
		{"deactivate member", domain.Account{ID: 7, Role: domain.RoleMember}, domain.StateDeactivated, domain.RoleAdmin, nil, true, true},
		{"deactivate twice", domain.Account{ID: 7, Role: domain.RoleMember, Deactivated: true}, domain.StateDeactivated, domain.RoleAdmin, domain.ErrAlreadyDeactivated, true, false},
		{"deactivate admin", domain.Account{ID: 7, Role: domain.RoleAdmin}, domain.StateDeactivated, domain.RoleAdmin, domain.ErrAdminImmune, false, false},
		{"restore", domain.Account{ID: 7, Role: domain.RoleMember, Deactivated: true}, domain.StateActive, domain.RoleAdmin, nil, false, true},
		{"restore active", domain.Account{ID: 7, Role: domain.RoleMember}, domain.StateActive, domain.RoleAdmin, domain.ErrAlreadyActive, false, false},
		{"member actor", domain.Account{ID: 7, Role: domain.RoleMember}, domain.StateDeactivated, domain.RoleMember, domain.ErrInsufficientRole, false, false},
		{"unknown state", domain.Account{ID: 7, Role: domain.RoleMember}, "archived", domain.RoleAdmin, domain.ErrInvalidState, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubLifecycleStore(&tc.account)
			lc := NewLifecycle(store, time.Second)

			acct, err := lc.Transition(context.Background(), 7, tc.target, tc.acting)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
			if err == nil && acct.Deactivated != tc.wantFlag {
				t.Fatalf("returned account flag = %v, want %v", acct.Deactivated, tc.wantFlag)
			}
			if got := store.get(7).Deactivated; got != tc.wantFlag {
				t.Fatalf("stored flag = %v, want %v", got, tc.wantFlag)
			}
			if (store.setCalls > 0) != tc.wantSetCall {
				t.Fatalf("SetDeactivated calls = %d, want call: %v", store.setCalls, tc.wantSetCall)
			}
		})
	}
}

func TestLifecycle_Transition_NotFound(t *testing.T) {
	lc := NewLifecycle(newStubLifecycleStore(), time.Second)

	if _, err := lc.Transition(context.Background(), 99, domain.StateDeactivated, domain.RoleAdmin); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLifecycle_Transition_LostRace(t *testing.T) {
	store := newStubLifecycleStore(&domain.Account{ID: 7, Role: domain.RoleMember})
	store.beforeSet = func(accounts map[int64]*domain.Account) {
		accounts[7].Deactivated = true
	}
	lc := NewLifecycle(store, time.Second)

	if _, err := lc.Transition(context.Background(), 7, domain.StateDeactivated, domain.RoleAdmin); !errors.Is(err, domain.ErrAlreadyDeactivated) {
		t.Fatalf("expected ErrAlreadyDeactivated, got %v", err)
	}
}

func TestLifecycle_CheckActive(t *testing.T) {
	store := newStubLifecycleStore(
		&domain.Account{ID: 1, Role: domain.RoleMember},
		&domain.Account{ID: 2, Role: domain.RoleMember, Deactivated: true},
	)
	lc := NewLifecycle(store, time.Second)

	if err := lc.CheckActive(context.Background(), 1); err != nil {
		t.Fatalf("active account rejected: %v", err)
	}
	if err := lc.CheckActive(context.Background(), 2); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive for deactivated, got %v", err)
	}
	if err := lc.CheckActive(context.Background(), 3); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive for missing, got %v", err)
	}
}

func TestLifecycle_StoreTimeoutIsRetryable(t *testing.T) {
	store := newStubLifecycleStore(&domain.Account{ID: 1, Role: domain.RoleMember})
	lc := NewLifecycle(store, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := lc.CheckActive(ctx, 1)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("store failure reported as inactive account")
	}

	if _, err := lc.Transition(ctx, 1, domain.StateDeactivated, domain.RoleAdmin); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from Transition, got %v", err)
	}
}
