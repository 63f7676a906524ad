package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/api/handler"
	"github.com/99minutos/account-service/internal/core/auth"
	"github.com/99minutos/account-service/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"missing credential", domain.ErrMissingCredential, http.StatusUnauthorized, "missing_credential", "missing credential"},
		{"malformed credential", domain.ErrMalformedCredential, http.StatusUnauthorized, "malformed_credential", "malformed credential"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "invalid_credential", "invalid or expired credential"},
		{"leaked expiry reason", auth.ErrTokenExpired, http.StatusUnauthorized, "invalid_credential", "invalid or expired credential"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "invalid credentials"},
		{"inactive", domain.ErrAccountInactive, http.StatusForbidden, "account_inactive", "account no longer active"},
		{"role", domain.ErrInsufficientRole, http.StatusForbidden, "insufficient_role", "forbidden: insufficient role"},
		{"owner", domain.ErrNotOwner, http.StatusForbidden, "not_owner", "forbidden: not resource owner"},
		{"admin immune", domain.ErrAdminImmune, http.StatusForbidden, "admin_immune", "cannot deactivate an admin account"},
		{"already deactivated", domain.ErrAlreadyDeactivated, http.StatusConflict, "already_deactivated", "already deactivated"},
		{"already active", domain.ErrAlreadyActive, http.StatusConflict, "already_active", "already active"},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict, "email_taken", "user already exists"},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound, "post_not_found", "post not found"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too_many_attempts", "too many failed login attempts"},
		{"wrapped validation", fmt.Errorf("%w: email is required", domain.ErrValidation), http.StatusUnprocessableEntity, "invalid_request", "invalid request: email is required"},
		{"store", fmt.Errorf("%w: context deadline exceeded", domain.ErrStoreUnavailable), http.StatusServiceUnavailable, "store_unavailable", "account store unavailable"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid_request", "invalid payload"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal", "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp handler.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Code != tt.wantCode || resp.Error != tt.wantMsg {
				t.Fatalf("expected {%q %q}, got {%q %q}", tt.wantMsg, tt.wantCode, resp.Error, resp.Code)
			}
			if tt.wantStatus == http.StatusServiceUnavailable && rec.Header().Get("Retry-After") == "" {
				t.Fatalf("missing Retry-After on 503")
			}
		})
	}
}

func TestHTTPErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNotOwner, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
