package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/core/domain"
)

// principalKey is the echo context key holding the authenticated Principal.
const principalKey = "principal"

// Authenticator resolves the caller of a request from its Authorization header.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (domain.Principal, error)
}

// Auth runs the auth gate and injects the Principal into the context.
// Rejections are returned to the HTTP error handler unchanged.
func Auth(gate Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			p, err := gate.Authenticate(c.Request().Context(), header)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}

			SetPrincipal(c, p)
			return next(c)
		}
	}
}

// SetPrincipal stores p on the request context.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the Principal injected by Auth. ok is false when the
// route did not pass through the gate.
func PrincipalFrom(c echo.Context) (p domain.Principal, ok bool) {
	p, ok = c.Get(principalKey).(domain.Principal)
	return p, ok
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, domain.ErrMalformedCredential):
		return "malformed_credential"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_credential"
	case errors.Is(err, domain.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "error"
	}
}
