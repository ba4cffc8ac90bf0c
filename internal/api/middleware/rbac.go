package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RBAC enforces that the token's role set contains required. The 403 body
// lists the caller's actual roles so the denial is explainable. Roles are
// read from the token claims only; the database is never consulted.
func RBAC(required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			for _, r := range roles {
				if r == required {
					return next(c)
				}
			}

			actual := "none"
			if len(roles) > 0 {
				actual = strings.Join(roles, ", ")
			}
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": fmt.Sprintf("%s role required (your roles: %s)", required, actual),
			})
		}
	}
}
