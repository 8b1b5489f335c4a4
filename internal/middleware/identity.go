package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key holding the caller's user id (uint).
const UserIDKey = "userID"

// QueryIdentity takes the caller from ?userId=. Requests without it pass
// through anonymous; handlers that need a caller reject them.
func QueryIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.QueryParam("userId")
			if raw == "" {
				return next(c)
			}
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid userId")
			}
			c.Set(UserIDKey, uint(id))
			return next(c)
		}
	}
}
