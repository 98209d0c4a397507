package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/ledger"
)

// BrowseHandler serves the unauthenticated read surface.  These routes
// sit behind the Redis response cache since they are the hottest and
// change rarely.
type BrowseHandler struct {
	Ledger ledger.Ledger
}

func NewBrowseHandler(l ledger.Ledger) *BrowseHandler {
	if l == nil {
		panic("nil ledger passed to NewBrowseHandler")
	}
	return &BrowseHandler{Ledger: l}
}

// ActiveListings handles GET /v1/listings: every active listing.
func (h *BrowseHandler) ActiveListings(c echo.Context) error {
	listings, err := h.Ledger.ActiveListings(c.Request().Context())
	if err != nil {
		return ledgerError(c, err)
	}
	items := make([]listingView, 0, len(listings))
	for _, l := range listings {
		items = append(items, viewListing(l))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetListing handles GET /v1/listings/:id.  Deactivated listings stay
// readable so past bookings keep a resolvable reference.
func (h *BrowseHandler) GetListing(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	l, err := h.Ledger.GetListing(c.Request().Context(), id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, viewListing(l))
}

// Stats handles GET /v1/stats: marketplace totals for dashboards.
func (h *BrowseHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	total, err := h.Ledger.ListingCount(ctx)
	if err != nil {
		return ledgerError(c, err)
	}
	admin, err := h.Ledger.GetAdmin(ctx)
	if err != nil {
		return ledgerError(c, err)
	}
	escrow, err := h.Ledger.EscrowBalance(ctx)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_listings": total,
		"admin":          admin,
		"escrow_balance": escrow,
	})
}
