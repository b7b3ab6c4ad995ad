package apitest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const headerRole = "role"

// RequireRole admits requests whose role header names one of allowedRoles.
// The header is trusted as sent; the API has no other credential.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := c.Request().Header.Get(headerRole)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing role")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			return next(c)
		}
	}
}
