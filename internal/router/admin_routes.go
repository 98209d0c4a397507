package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/handler"
	"github.com/iliyamo/homestay-ledger/internal/middleware"
	"github.com/iliyamo/homestay-ledger/internal/model"
)

// RegisterAdmin registers moderation endpoints under /v1/admin.  The
// RequireAdmin middleware rejects every caller but the configured admin
// address; the ledger re-checks the same rule on each operation.
func RegisterAdmin(e *echo.Echo, h *handler.HostHandler, r *handler.ReviewHandler, jwtSecret string, admin model.Address) {
	g := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin(admin))
	g.DELETE("/listings/:id", h.AdminDeactivateListing)
	g.DELETE("/reviews/:id", r.RemoveReview)
}
