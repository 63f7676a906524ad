package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// AuthHandler serves signup, login and self-removal.
type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

// Signup creates a new member account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acct, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Profile: domain.Profile{
			Name:    req.Name,
			Age:     *req.Age,
			Gender:  req.Gender,
			City:    req.City,
			Country: req.Country,
			Address: req.Address,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataResponse{Message: "User created successfully", Data: acct.Public()})
}

// Login verifies the credentials and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  dataResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, acct, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{
		Message: "Login successful",
		Data: loginResponse{
			Token:     token,
			ExpiresIn: int64(h.tokenTTL / time.Second),
			User:      acct.Public(),
		},
	})
}

// DeleteAccount hard-deletes the caller's own account after re-checking the password.
//
// @Summary      Delete own account
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteAccountRequest  true  "Current password"
// @Success      200   {object}  dataResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /user_delete [delete]
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req deleteAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.DeleteAccount(c.Request().Context(), p, req.Password); err != nil {
		return err
	}
	metrics.LifecycleTransitionsTotal.WithLabelValues(ports.AuditSelfDelete).Inc()

	return c.JSON(http.StatusOK, dataResponse{Message: "User deleted successfully", Data: []any{}})
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
