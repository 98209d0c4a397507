package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// RequireAdmin returns a middleware that only lets the configured admin
// address through.  The admin is a single moderation identity fixed at
// startup; it gates the moderation routes and has no power over bookings
// beyond what the ledger itself grants.  Assumes JWTAuth has stored the
// caller under "address".
func RequireAdmin(admin model.Address) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, _ := c.Get("address").(string)
			if admin.IsZero() || model.NormalizeAddress(v) != admin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
