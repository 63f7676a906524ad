package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/core/ports"
)

// AccountHandler serves the caller's own profile.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Details returns the caller's public profile.
//
// @Summary      Own account details
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /user/details [get]
func (h *AccountHandler) Details(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	acct, err := h.service.Profile(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "User found", Data: acct.Public()})
}

// Replace overwrites every profile attribute.
//
// @Summary      Replace profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Full profile"
// @Success      200   {object}  dataResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /user_update [put]
func (h *AccountHandler) Replace(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acct, err := h.service.ReplaceProfile(c.Request().Context(), p, toProfile(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Profile fully replaced", Data: acct.Public()})
}

// Patch changes only the attributes present in the body.
//
// @Summary      Update profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profilePatchRequest  true  "Partial profile"
// @Success      200   {object}  dataResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /user_update [patch]
func (h *AccountHandler) Patch(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req profilePatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acct, err := h.service.PatchProfile(c.Request().Context(), p, toProfilePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Profile updated", Data: acct.Public()})
}
