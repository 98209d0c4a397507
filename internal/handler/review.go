package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/ledger"
	"github.com/iliyamo/homestay-ledger/internal/model"
)

// ReviewHandler covers the review ledger: guests leave one rating per
// completed booking, anyone reads aggregates.
type ReviewHandler struct {
	Ledger ledger.Ledger
}

func NewReviewHandler(l ledger.Ledger) *ReviewHandler {
	if l == nil {
		panic("nil ledger passed to NewReviewHandler")
	}
	return &ReviewHandler{Ledger: l}
}

// CreateReview handles POST /v1/reviews.  The booking must be completed
// and the caller must be its guest.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		BookingID uint64 `json:"booking_id"`
		Rating    uint8  `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	r, err := h.Ledger.CreateReview(c.Request().Context(), caller, body.BookingID, body.Rating, body.Comment)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// RemoveReview handles DELETE /v1/admin/reviews/:id (moderation only).
func (h *ReviewHandler) RemoveReview(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	if err := h.Ledger.RemoveReview(c.Request().Context(), caller, id); err != nil {
		return ledgerError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListingReviews handles GET /v1/listings/:id/reviews: the active
// reviews for a listing, oldest first.
func (h *ReviewHandler) ListingReviews(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	ctx := c.Request().Context()
	ids, err := h.Ledger.GetListingReviews(ctx, id)
	if err != nil {
		return ledgerError(c, err)
	}
	items := make([]*model.Review, 0, len(ids))
	for _, rid := range ids {
		r, err := h.Ledger.GetReview(ctx, rid)
		if err != nil {
			return ledgerError(c, err)
		}
		items = append(items, r)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListingRating handles GET /v1/listings/:id/rating.  The average is
// scaled by 100 (450 means 4.50 stars) and 0 when there are no reviews.
func (h *ReviewHandler) ListingRating(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	ctx := c.Request().Context()
	avg, err := h.Ledger.GetListingAverageRating(ctx, id)
	if err != nil {
		return ledgerError(c, err)
	}
	count, err := h.Ledger.GetListingReviewCount(ctx, id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"listing_id":     id,
		"average_rating": avg,
		"review_count":   count,
	})
}
