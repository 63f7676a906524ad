package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Email    string
	Password string
	Profile  domain.Profile
}

// AuthService covers signup, login and self-removal.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	DeleteAccount(ctx context.Context, p domain.Principal, password string) error
}

// LoginThrottle counts failed logins per email.
type LoginThrottle interface {
	Allowed(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
