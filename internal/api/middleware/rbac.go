package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/core/auth"
	"github.com/99minutos/account-service/internal/core/domain"
)

// RequireRole allows the request through only when the authenticated caller
// holds role. It must be mounted after Auth.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrMissingCredential
			}
			if err := auth.RequireRole(p, role); err != nil {
				return err
			}
			return next(c)
		}
	}
}
