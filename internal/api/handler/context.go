package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a handler behind the
// middleware must always see a positive user id.
func ctxClaims(c echo.Context) (userID int64, roles []string, err error) {
	userID, _ = c.Get("user_id").(int64)
	if userID <= 0 {
		return 0, nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	roles, _ = c.Get("roles").([]string)
	return userID, roles, nil
}
