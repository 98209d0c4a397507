// Package ledger implements the deterministic state-transition core of
// the homestay marketplace: the listing registry, the booking escrow and
// the review ledger, all exposed through one Ledger interface with an
// in-memory backend and a MySQL backend that must behave identically.
//
// This file defines the sentinel errors shared by both backends.  Every
// operation either fully succeeds or returns one of these values with
// the ledger state unchanged; handlers translate them to HTTP codes with
// errors.Is.  None of them is transient, so the ledger never retries.
package ledger

import "errors"

// Not-found errors: the id has never been assigned.  Handlers should
// translate these into HTTP 404 responses.
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrAccountNotFound = errors.New("account not found")
)

// ErrUnauthorized is returned when the caller lacks the required role
// for the entity: a non-host mutating a listing, a non-guest checking in
// or cancelling, a disallowed party settling a checkout.  Translates to
// HTTP 403.
var ErrUnauthorized = errors.New("unauthorized")

// Validation errors for malformed input.  Translate to HTTP 400.
var (
	ErrInvalidName      = errors.New("listing needs a name")
	ErrInvalidLocation  = errors.New("listing needs a location")
	ErrInvalidPrice     = errors.New("price per night must be positive")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// ErrListingInactive is returned when booking a deactivated listing.
var ErrListingInactive = errors.New("listing is not active")

// ErrPaymentMismatch is returned when the deposited amount does not
// exactly equal the computed total price.  No funds move.
var ErrPaymentMismatch = errors.New("deposit does not match total price")

// ErrInsufficientFunds is returned when the guest's balance cannot cover
// the deposit.  Checked only after the deposit amount itself validates.
var ErrInsufficientFunds = errors.New("insufficient funds")

// State-machine errors.  Translate to HTTP 409.
var (
	// ErrNotPending is returned by checkIn when the booking has left
	// the Pending state.
	ErrNotPending = errors.New("booking is not pending")
	// ErrAlreadyFinal is returned when a transition is attempted on a
	// Completed or Cancelled booking.  checkOut in particular must fail
	// with this rather than ever double-paying.
	ErrAlreadyFinal = errors.New("booking already finalized")
	// ErrBookingNotComplete is returned by createReview when the
	// referenced booking has not reached Completed.
	ErrBookingNotComplete = errors.New("booking is not completed")
	// ErrTooEarly is returned by checkOut before the stay's end date.
	ErrTooEarly = errors.New("stay has not ended yet")
)
