package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/account-service/internal/core/domain"
)

// CredentialStore derives and checks bcrypt password hashes. The work factor
// is fixed when the store is built.
type CredentialStore struct {
	cost  int
	decoy []byte
}

// NewCredentialStore returns a store hashing at the given bcrypt cost.
// A zero cost selects bcrypt.DefaultCost; anything else is clamped to
// bcrypt's accepted range.
func NewCredentialStore(cost int) (*CredentialStore, error) {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}

	decoy, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return &CredentialStore{cost: cost, decoy: decoy}, nil
}

// Cost returns the configured bcrypt work factor.
func (s *CredentialStore) Cost() int {
	return s.cost
}

// HashPassword returns a salted hash of plaintext. Two calls with the same
// input never return the same hash.
func (s *CredentialStore) HashPassword(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must not exceed 72 bytes", domain.ErrValidation)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword reports whether plaintext matches storedHash. A malformed
// hash is a mismatch, never an error.
func (s *CredentialStore) VerifyPassword(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// Decoy spends the same work as a real verification and always fails. Login
// calls it for unknown emails so response time does not reveal whether an
// account exists.
func (s *CredentialStore) Decoy(plaintext string) bool {
	_ = bcrypt.CompareHashAndPassword(s.decoy, []byte(plaintext))
	return false
}
