package middleware

import (
	"github.com/labstack/echo/v4"
)

// APIVersion is reported on every JSON API response.
const APIVersion = "v1"

// VersionHeader adds the X-API-Version header to responses of a route group.
func VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)
			c.Set("api_version", version)
			return next(c)
		}
	}
}
