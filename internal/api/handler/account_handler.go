package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prospectius/crm-backend/internal/core/domain"
	"github.com/prospectius/crm-backend/internal/core/ports"
)

// AccountHandler handles HTTP requests for account administration. All of its
// routes sit behind the Administrateur role gate.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Create registers a new account.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.Create(c.Request().Context(), ports.CreateAccountInput{
		Nom:        req.Nom,
		Prenom:     req.Prenom,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		TypeCompte: domain.AccountRole(req.TypeCompte),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "account created"})
}

// List returns all accounts, password hashes excluded.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Account
// @Router       /v1/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Get returns one account by id.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  map[string]string
// @Router       /v1/accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	account, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Update rewrites the identity fields present in the payload.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to update"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/accounts/{id} [patch]
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.service.UpdateInfo(c.Request().Context(), id, domain.AccountPatch{
		Nom:      req.Nom,
		Prenom:   req.Prenom,
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "account updated"})
}

// UpdatePassword replaces the account's password.
//
// @Summary      Change an account password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Account id"
// @Param        body  body      updatePasswordRequest  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/accounts/{id}/password [put]
func (h *AccountHandler) UpdatePassword(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdatePassword(c.Request().Context(), id, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// Delete removes an account.
//
// @Summary      Delete an account
// @Tags         accounts
// @Security     BearerAuth
// @Param        id  path  int  true  "Account id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
