package auth

import (
	"context"
	"sync"

	"github.com/99minutos/account-service/internal/core/domain"
)

type stubLifecycleStore struct {
	mu       sync.Mutex
	accounts map[int64]*domain.Account
	findErr  error
	setCalls int
	// beforeSet runs inside SetDeactivated before the compare, to simulate a
	// concurrent writer.
	beforeSet func(accounts map[int64]*domain.Account)
}

func newStubLifecycleStore(accounts ...*domain.Account) *stubLifecycleStore {
	s := &stubLifecycleStore{accounts: make(map[int64]*domain.Account)}
	for _, a := range accounts {
		clone := *a
		s.accounts[a.ID] = &clone
	}
	return s
}

func (s *stubLifecycleStore) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (s *stubLifecycleStore) SetDeactivated(_ context.Context, id int64, to bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.beforeSet != nil {
		s.beforeSet(s.accounts)
	}
	a, ok := s.accounts[id]
	if !ok || a.Deactivated == to || (to && a.Role == domain.RoleAdmin) {
		return false, nil
	}
	a.Deactivated = to
	return true, nil
}

func (s *stubLifecycleStore) get(id int64) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.accounts[id]
}
