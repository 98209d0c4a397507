package handler // handler defines http handlers

import (
	"errors"   // errors provides sentinel comparisons for ledger failures
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/homestay-ledger/internal/ledger" // ledger core
	"github.com/iliyamo/homestay-ledger/internal/model"  // domain types
)

// getAddress extracts the authenticated caller address stored by the
// JWTAuth middleware.  Handlers treat a missing address as 401; the
// ledger itself never reads identity from anywhere else.
func getAddress(c echo.Context) (model.Address, error) {
	v, _ := c.Get("address").(string)
	if v == "" {
		return "", errors.New("no address in context")
	}
	return model.NormalizeAddress(v), nil
}

// parseID parses a positive uint64 path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// ledgerError translates a ledger sentinel into the matching HTTP
// response.  Unknown errors become a 500 without leaking details.
func ledgerError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ledger.ErrListingNotFound),
		errors.Is(err, ledger.ErrBookingNotFound),
		errors.Is(err, ledger.ErrReviewNotFound),
		errors.Is(err, ledger.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidName),
		errors.Is(err, ledger.ErrInvalidLocation),
		errors.Is(err, ledger.ErrInvalidPrice),
		errors.Is(err, ledger.ErrInvalidDateRange),
		errors.Is(err, ledger.ErrInvalidRating),
		errors.Is(err, ledger.ErrPaymentMismatch):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrListingInactive),
		errors.Is(err, ledger.ErrNotPending),
		errors.Is(err, ledger.ErrAlreadyFinal),
		errors.Is(err, ledger.ErrBookingNotComplete),
		errors.Is(err, ledger.ErrTooEarly):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ledger error"})
}
