package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/api/handler"
	"github.com/99minutos/account-service/internal/core/auth"
	"github.com/99minutos/account-service/internal/core/domain"
)

// retryAfterSeconds is sent with every 503 so clients back off before retrying.
const retryAfterSeconds = "1"

// apiError is the HTTP rendering of a domain error.
type apiError struct {
	status int
	code   string
}

// errorTable maps every domain sentinel to its status and machine-readable code.
// Order matters only where one error wraps another.
var errorTable = []struct {
	err error
	apiError
}{
	{domain.ErrMissingCredential, apiError{http.StatusUnauthorized, "missing_credential"}},
	{domain.ErrMalformedCredential, apiError{http.StatusUnauthorized, "malformed_credential"}},
	{domain.ErrInvalidToken, apiError{http.StatusUnauthorized, "invalid_credential"}},
	{domain.ErrInvalidCredentials, apiError{http.StatusUnauthorized, "invalid_credentials"}},
	{domain.ErrTooManyAttempts, apiError{http.StatusTooManyRequests, "too_many_attempts"}},

	{domain.ErrAccountInactive, apiError{http.StatusForbidden, "account_inactive"}},
	{domain.ErrInsufficientRole, apiError{http.StatusForbidden, "insufficient_role"}},
	{domain.ErrNotOwner, apiError{http.StatusForbidden, "not_owner"}},
	{domain.ErrAdminImmune, apiError{http.StatusForbidden, "admin_immune"}},

	{domain.ErrAlreadyDeactivated, apiError{http.StatusConflict, "already_deactivated"}},
	{domain.ErrAlreadyActive, apiError{http.StatusConflict, "already_active"}},
	{domain.ErrNotDeactivated, apiError{http.StatusConflict, "not_deactivated"}},
	{domain.ErrEmailTaken, apiError{http.StatusConflict, "email_taken"}},

	{domain.ErrAccountNotFound, apiError{http.StatusNotFound, "account_not_found"}},
	{domain.ErrPostNotFound, apiError{http.StatusNotFound, "post_not_found"}},
	{domain.ErrNoPosts, apiError{http.StatusNotFound, "no_posts"}},

	{domain.ErrValidation, apiError{http.StatusUnprocessableEntity, "invalid_request"}},
	{domain.ErrInvalidState, apiError{http.StatusBadRequest, "invalid_request"}},

	{domain.ErrStoreUnavailable, apiError{http.StatusServiceUnavailable, "store_unavailable"}},
}

// tokenErrors never reach a handler through the gate, which collapses them.
// They are still mapped so a direct caller cannot leak the reason.
var tokenErrors = []error{
	auth.ErrTokenMalformed,
	auth.ErrTokenSignature,
	auth.ErrTokenExpired,
	auth.ErrTokenNotYetValid,
	auth.ErrTokenClaims,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and error code.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<code>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := resolveError(err, log, c)
		if status == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", retryAfterSeconds)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}

// StatusFor returns the status code and error code for err, or 500 and
// "internal" when err is not a known domain error.
func StatusFor(err error) (int, string) {
	if ae, ok := lookup(err); ok {
		return ae.status, ae.code
	}
	return http.StatusInternalServerError, "internal"
}

func lookup(err error) (apiError, bool) {
	for _, row := range errorTable {
		if errors.Is(err, row.err) {
			return row.apiError, true
		}
	}
	for _, te := range tokenErrors {
		if errors.Is(err, te) {
			return apiError{http.StatusUnauthorized, "invalid_credential"}, true
		}
	}
	return apiError{}, false
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Error: fmt.Sprintf("%v", he.Message), Code: httpCode(he.Code)}
	}

	if ae, ok := lookup(err); ok {
		msg := err.Error()
		switch ae.code {
		case "invalid_credential":
			msg = domain.ErrInvalidToken.Error()
		case "store_unavailable":
			log.Warn().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("store unavailable")
			msg = domain.ErrStoreUnavailable.Error()
		}
		return ae.status, handler.ErrorResponse{Error: msg, Code: ae.code}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Error: "internal server error", Code: "internal"}
}

// httpCode names the errors echo raises on its own.
func httpCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "invalid_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusUnauthorized:
		return "missing_credential"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	}
	return "internal"
}
