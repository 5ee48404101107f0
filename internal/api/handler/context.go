package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prospectius/crm-backend/internal/core/domain"
)

// ctxActor rebuilds the acting account from the claims injected by the Auth
// middleware and fast-fails before any service call:
//   - id_compte must be present (presence proves the middleware ran).
//   - type_compte must name a known role; a token minted with an unknown
//     role is structurally valid but operationally unusable, so reject 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get("id_compte").(int64)
	if id == 0 {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get("type_compte").(string)
	if !domain.AccountRole(role).Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries an unknown account type")
	}

	return domain.Actor{AccountID: id, Role: domain.AccountRole(role)}, nil
}

// pathID parses a numeric path parameter, rejecting zero and garbage with a
// 400 before any service call.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := parseID(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
