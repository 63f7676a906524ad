package auth

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
)

// TokenVerifier verifies a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// ActiveChecker reports whether an account may still act.
type ActiveChecker interface {
	CheckActive(ctx context.Context, accountID int64) error
}

// Gate resolves the Principal of a request from its Authorization header.
type Gate struct {
	tokens    TokenVerifier
	lifecycle ActiveChecker
	log       zerolog.Logger
}

// NewGate builds a Gate from a token verifier and a lifecycle check.
func NewGate(tokens TokenVerifier, lifecycle ActiveChecker, log zerolog.Logger) *Gate {
	return &Gate{tokens: tokens, lifecycle: lifecycle, log: log}
}

// Authenticate verifies the bearer credential in header and confirms the
// account is still active. It fails with domain.ErrMissingCredential,
// domain.ErrMalformedCredential, domain.ErrInvalidToken or
// domain.ErrAccountInactive; store failures pass through wrapped in
// domain.ErrStoreUnavailable.
func (g *Gate) Authenticate(ctx context.Context, header string) (domain.Principal, error) {
	token, err := BearerToken(header)
	if err != nil {
		return domain.Principal{}, err
	}

	p, err := g.tokens.Verify(token)
	if err != nil {
		// The reason stays in the log; callers only learn the token was refused.
		g.log.Debug().Err(err).Msg("token rejected")
		return domain.Principal{}, domain.ErrInvalidToken
	}

	if err := g.lifecycle.CheckActive(ctx, p.AccountID); err != nil {
		return domain.Principal{}, err
	}
	return p, nil
}

// BearerToken extracts the token from a "Bearer <token>" header value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrMissingCredential
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrMalformedCredential
	}
	token := strings.TrimSpace(parts[1])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", domain.ErrMalformedCredential
	}
	return token, nil
}
