package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/account-service/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// Token rejection reasons returned by TokenService.Verify.
var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenSignature   = errors.New("token signature mismatch")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrTokenClaims      = errors.New("token claims invalid")
)

// ErrSigningKeyMissing is returned when a TokenService is built without a key.
var ErrSigningKeyMissing = errors.New("token signing key is empty")

// TokenConfig is the immutable signing configuration, built once at startup.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	// Leeway tolerates clock skew. It widens both the not-before and the
	// expiry bound.
	Leeway time.Duration
}

// Claims is the JWT payload: account id and role on top of the registered
// claims (sub, iss, iat, nbf, exp). exp only has second precision, so the
// exact expiry instant travels in ExpiresAtNano.
type Claims struct {
	AccountID     int64       `json:"aid"`
	Role          domain.Role `json:"role"`
	ExpiresAtNano int64       `json:"exp_ns"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock injects the time source used for issuance and verification.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService builds a TokenService from cfg. The secret is copied so later
// changes to the caller's slice have no effect.
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrSigningKeyMissing
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	s := &TokenService{
		secret: append([]byte(nil), cfg.Secret...),
		ttl:    ttl,
		issuer: cfg.Issuer,
		leeway: cfg.Leeway,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// IssueToken signs a token for the account as of now.
func (s *TokenService) IssueToken(accountID int64, role domain.Role) (string, error) {
	return s.Issue(accountID, role, s.now())
}

// Issue signs a token valid from issuedAt until exactly issuedAt+TTL.
func (s *TokenService) Issue(accountID int64, role domain.Role, issuedAt time.Time) (string, error) {
	if accountID <= 0 || !role.Valid() {
		return "", fmt.Errorf("issue token: %w", ErrTokenClaims)
	}

	issuedAt = issuedAt.UTC()
	iat := issuedAt.Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)
	claims := Claims{
		AccountID:     accountID,
		Role:          role,
		ExpiresAtNano: expiresAt.UnixNano(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(iat),
			NotBefore: jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiresAt)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and validity window and returns the identity the
// token carries. Errors are one of the ErrToken* reasons.
func (s *TokenService) Verify(token string) (domain.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return domain.Principal{}, classifyTokenError(err)
	}

	if claims.AccountID <= 0 || !claims.Role.Valid() || claims.ExpiresAtNano <= 0 ||
		claims.Subject != strconv.FormatInt(claims.AccountID, 10) {
		return domain.Principal{}, ErrTokenClaims
	}
	if !s.now().Before(time.Unix(0, claims.ExpiresAtNano).Add(s.leeway)) {
		return domain.Principal{}, ErrTokenExpired
	}

	return domain.Principal{AccountID: claims.AccountID, Role: claims.Role}, nil
}

// ceilSecond rounds t up to a whole second so the registered exp never
// falls before the exact expiry.
func ceilSecond(t time.Time) time.Time {
	c := t.Truncate(time.Second)
	if c.Before(t) {
		c = c.Add(time.Second)
	}
	return c
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	default:
		return ErrTokenClaims
	}
}
