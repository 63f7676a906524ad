package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// PasswordHasher is the credential side of the auth core.
type PasswordHasher interface {
	HashPassword(plaintext string) (string, error)
	VerifyPassword(plaintext, storedHash string) bool
	Decoy(plaintext string) bool
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	IssueToken(accountID int64, role domain.Role) (string, error)
}

// AuthService implements signup, login and self hard-delete.
type AuthService struct {
	bounded
	accounts ports.AccountRepository
	posts    ports.PostRepository
	creds    PasswordHasher
	tokens   TokenIssuer
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService wires the auth use cases. throttle and audit may be nil.
func NewAuthService(
	accounts ports.AccountRepository,
	posts ports.PostRepository,
	creds PasswordHasher,
	tokens TokenIssuer,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	log zerolog.Logger,
	opts ...Option,
) *AuthService {
	if throttle == nil {
		throttle = noThrottle{}
	}
	if audit == nil {
		audit = discardAudit{}
	}
	return &AuthService{
		bounded:  newBounded(opts),
		accounts: accounts,
		posts:    posts,
		creds:    creds,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// Signup creates an active member account.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	// Cheap early conflict; the unique index on email is what guarantees it.
	if _, err := s.findByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.accounts.Create(ctx, &domain.Account{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		Profile:      in.Profile,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ports.AuditEvent{AccountID: created.ID, ActorID: created.ID, Action: ports.AuditSignup, At: now})
	s.log.Info().Int64("account_id", created.ID).Msg("account created")
	return created, nil
}

// Login verifies the credential and issues a token. Unknown email and wrong
// password both yield domain.ErrInvalidCredentials. A deactivated account is
// refused with domain.ErrAccountInactive only after the password checked out.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.throttle.Allowed(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
	} else if !allowed {
		return "", nil, domain.ErrTooManyAttempts
	}

	acct, err := s.findByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, err
		}
		s.creds.Decoy(password)
		s.failedAttempt(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if !s.creds.VerifyPassword(password, acct.PasswordHash) {
		s.failedAttempt(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if acct.Deactivated {
		return "", nil, domain.ErrAccountInactive
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login throttle")
	}

	token, err := s.tokens.IssueToken(acct.ID, acct.Role)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Int64("account_id", acct.ID).Msg("login succeeded")
	return token, acct, nil
}

// DeleteAccount removes the caller's own account, then its posts, after the
// caller proves the password again.
func (s *AuthService) DeleteAccount(ctx context.Context, p domain.Principal, password string) error {
	lookupCtx, cancel := s.lookup(ctx)
	acct, err := s.accounts.FindByID(lookupCtx, p.AccountID)
	cancel()
	if err != nil {
		return storeError(err)
	}
	if !s.creds.VerifyPassword(password, acct.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	if err := s.accounts.Delete(ctx, acct.ID); err != nil {
		return err
	}
	s.audit.Record(ports.AuditEvent{AccountID: acct.ID, ActorID: acct.ID, Action: ports.AuditSelfDelete, At: s.now().UTC()})

	n, err := s.posts.DeleteByOwner(ctx, acct.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("account_id", acct.ID).Msg("account deleted but its posts were not removed")
		return fmt.Errorf("delete account posts: %w", err)
	}
	s.log.Info().Int64("account_id", acct.ID).Int64("posts_removed", n).Msg("account deleted by owner")
	return nil
}

// EnsureAdmin creates an administrator account for email unless one with that
// email already exists. It reports whether an account was created. An
// existing non-admin account with the email is left alone and reported as
// domain.ErrEmailTaken.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return false, fmt.Errorf("%w: admin email and password are required", domain.ErrValidation)
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.Role == domain.RoleAdmin:
		return false, nil
	case err == nil:
		return false, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrAccountNotFound):
		return false, err
	}

	hash, err := s.creds.HashPassword(password)
	if err != nil {
		return false, err
	}
	now := s.now().UTC()
	created, err := s.accounts.Create(ctx, &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Profile:      domain.Profile{Name: "Administrator"},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, err
	}

	s.audit.Record(ports.AuditEvent{AccountID: created.ID, ActorID: created.ID, Action: ports.AuditSignup, At: now})
	s.log.Info().Int64("account_id", created.ID).Msg("admin account seeded")
	return true, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := s.lookup(ctx)
	defer cancel()
	acct, err := s.accounts.FindByEmail(ctx, email)
	return acct, storeError(err)
}

func (s *AuthService) failedAttempt(ctx context.Context, email string) {
	if err := s.throttle.Fail(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login attempt")
	}
}

type noThrottle struct{}

func (noThrottle) Allowed(context.Context, string) (bool, error) { return true, nil }
func (noThrottle) Fail(context.Context, string) error            { return nil }
func (noThrottle) Reset(context.Context, string) error           { return nil }

type discardAudit struct{}

func (discardAudit) Record(ports.AuditEvent) {}
