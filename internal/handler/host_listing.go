package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/ledger"
	"github.com/iliyamo/homestay-ledger/internal/model"
	"github.com/iliyamo/homestay-ledger/internal/utils"
)

// HostHandler exposes listing management to authenticated hosts.  Every
// method extracts the caller address from context and passes it down;
// authorization itself (host-only mutation) lives in the ledger, so the
// handler only translates input and errors.
type HostHandler struct {
	Ledger ledger.Ledger
}

// NewHostHandler constructs a HostHandler.  The ledger must be non-nil.
func NewHostHandler(l ledger.Ledger) *HostHandler {
	if l == nil {
		panic("nil ledger passed to NewHostHandler")
	}
	return &HostHandler{Ledger: l}
}

type listingBody struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	PropertyType  string `json:"property_type"`
	Beds          uint32 `json:"beds"`
	PricePerNight string `json:"price_per_night"` // decimal units, e.g. "0.15"
}

// listingView decorates a listing with the decimal form of its price so
// clients never have to divide by 10^18 themselves.
type listingView struct {
	*model.Listing
	PriceDecimal string `json:"price_per_night_decimal"`
}

func viewListing(l *model.Listing) listingView {
	return listingView{Listing: l, PriceDecimal: utils.FromSubunits(l.PricePerNight)}
}

// CreateListing handles POST /v1/listings.
func (h *HostHandler) CreateListing(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body listingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	price, err := utils.ToSubunits(body.PricePerNight)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price_per_night"})
	}
	l, err := h.Ledger.CreateListing(c.Request().Context(), caller, body.Name, body.Location, body.PropertyType, body.Beds, price)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusCreated, viewListing(l))
}

// UpdateListing handles PUT /v1/listings/:id.
func (h *HostHandler) UpdateListing(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	var body listingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	price, err := utils.ToSubunits(body.PricePerNight)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price_per_night"})
	}
	l, err := h.Ledger.UpdateListing(c.Request().Context(), caller, id, body.Name, body.Location, price)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, viewListing(l))
}

// DeactivateListing handles DELETE /v1/listings/:id.  The listing is
// soft-deleted: its id and history remain readable.
func (h *HostHandler) DeactivateListing(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	if err := h.Ledger.DeactivateListing(c.Request().Context(), caller, id); err != nil {
		return ledgerError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MyListings handles GET /v1/my-listings: the caller's listing ids
// hydrated into full records.
func (h *HostHandler) MyListings(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	ids, err := h.Ledger.GetHostListings(ctx, caller)
	if err != nil {
		return ledgerError(c, err)
	}
	items := make([]listingView, 0, len(ids))
	for _, id := range ids {
		l, err := h.Ledger.GetListing(ctx, id)
		if err != nil {
			return ledgerError(c, err)
		}
		items = append(items, viewListing(l))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// MyHostBookings handles GET /v1/my-host-bookings: bookings where the
// caller is the host side.
func (h *HostHandler) MyHostBookings(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	ids, err := h.Ledger.GetHostBookings(ctx, caller)
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

// AdminDeactivateListing handles DELETE /v1/admin/listings/:id, the
// moderation path.  RequireAdmin has already vetted the caller; the
// ledger re-checks anyway since the admin rule is part of its contract.
func (h *HostHandler) AdminDeactivateListing(c echo.Context) error {
	return h.DeactivateListing(c)
}
