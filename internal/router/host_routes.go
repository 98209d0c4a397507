package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/handler"
	"github.com/iliyamo/homestay-ledger/internal/middleware"
)

// RegisterHost registers listing-management endpoints under /v1.  All
// routes require a valid JWT; host-only authorization (only the listing
// owner may mutate it) is enforced inside the ledger.
func RegisterHost(e *echo.Echo, h *handler.HostHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	g.POST("/listings", h.CreateListing)
	g.PUT("/listings/:id", h.UpdateListing)
	g.DELETE("/listings/:id", h.DeactivateListing)
	g.GET("/my-listings", h.MyListings)
	g.GET("/my-host-bookings", h.MyHostBookings)
}
