package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/ledger"
	"github.com/iliyamo/homestay-ledger/internal/model"
	"github.com/iliyamo/homestay-ledger/internal/service"
	"github.com/iliyamo/homestay-ledger/internal/utils"
)

// BookingHandler drives the escrow lifecycle: create, check-in,
// check-out, cancel.  On successful check-out it publishes a
// booking.completed event so the payout consumer can record the split.
type BookingHandler struct {
	Ledger    ledger.Ledger
	Publisher *service.QueuePublisher // optional, nil disables events
}

// NewBookingHandler constructs a BookingHandler.  publisher may be nil
// when the queue is not configured.
func NewBookingHandler(l ledger.Ledger, publisher *service.QueuePublisher) *BookingHandler {
	if l == nil {
		panic("nil ledger passed to NewBookingHandler")
	}
	return &BookingHandler{Ledger: l, Publisher: publisher}
}

// CreateBooking handles POST /v1/bookings.  The deposit is a decimal
// string in whole units and must equal nights * price exactly.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ListingID uint64 `json:"listing_id"`
		CheckIn   int64  `json:"check_in"`
		CheckOut  int64  `json:"check_out"`
		Deposit   string `json:"deposit"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	deposit, err := utils.ToSubunits(body.Deposit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deposit"})
	}
	b, err := h.Ledger.CreateBooking(c.Request().Context(), caller, body.ListingID, body.CheckIn, body.CheckOut, deposit)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// CheckIn handles POST /v1/bookings/:id/check-in.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Ledger.CheckIn(c.Request().Context(), caller, id); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.BookingCheckedIn.String()})
}

// CheckOut handles POST /v1/bookings/:id/check-out.  Funds leave escrow
// here: payout to the host, fee to the treasury.
func (h *BookingHandler) CheckOut(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Ledger.CheckOut(c.Request().Context(), caller, id)
	if err != nil {
		return ledgerError(c, err)
	}
	if h.Publisher != nil {
		// Event delivery is best-effort; the ledger state already
		// committed and must not be rolled back on publish failure.
		if perr := h.Publisher.PublishBookingCompleted(c.Request().Context(), b); perr != nil {
			c.Logger().Errorf("publish booking.completed for booking %d: %v", b.ID, perr)
		}
	}
	return c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /v1/bookings/:id/cancel.  The full escrow
// amount, fee included, returns to the guest.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Ledger.CancelBooking(c.Request().Context(), caller, id); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.BookingCancelled.String()})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Ledger.GetBooking(c.Request().Context(), id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// MyBookings handles GET /v1/my-bookings: bookings where the caller is
// the guest.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	ids, err := h.Ledger.GetGuestBookings(ctx, caller)
	if err != nil {
		return ledgerError(c, err)
	}
	items := make([]*model.Booking, 0, len(ids))
	for _, id := range ids {
		b, err := h.Ledger.GetBooking(ctx, id)
		if err != nil {
			return ledgerError(c, err)
		}
		items = append(items, b)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
