package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/handler"
	"github.com/iliyamo/homestay-ledger/internal/middleware"
)

// RegisterGuest registers the escrow lifecycle, review writes and wallet
// endpoints under /v1.  All routes require a valid JWT.  Who may drive
// each transition (guest for check-in and review, host or guest for
// check-out depending on policy) is the ledger's call, not the router's.
func RegisterGuest(e *echo.Echo, b *handler.BookingHandler, r *handler.ReviewHandler, w *handler.WalletHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings/:id", b.GetBooking)
	g.POST("/bookings/:id/check-in", b.CheckIn)
	g.POST("/bookings/:id/check-out", b.CheckOut)
	g.POST("/bookings/:id/cancel", b.CancelBooking)
	g.GET("/my-bookings", b.MyBookings)

	g.POST("/reviews", r.CreateReview)

	g.GET("/wallet", w.Balance)
	g.GET("/wallet/:address", w.BalanceOf)
	g.POST("/wallet/deposit", w.Deposit)
}
