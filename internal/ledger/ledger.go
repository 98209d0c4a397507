package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// CheckoutPolicy controls which caller may settle a checkout.  The
// reference behavior restricts settlement to the host (or the admin);
// permissive deployments may allow any party, so the rule is
// configuration rather than code.
type CheckoutPolicy uint8

const (
	// CheckoutHostOnly allows the booking's host or the admin.
	CheckoutHostOnly CheckoutPolicy = iota
	// CheckoutAnyParty allows the guest, the host or the admin.
	CheckoutAnyParty
)

// ParseCheckoutPolicy reads the policy from its config spelling.
// Unrecognized values fall back to the restrictive default.
func ParseCheckoutPolicy(s string) CheckoutPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "any") {
		return CheckoutAnyParty
	}
	return CheckoutHostOnly
}

// Clock supplies "now" to the ledger.  Time is injected rather than read
// from the environment so the same inputs always produce the same
// outputs; tests substitute a fixed clock.
type Clock func() time.Time

// Ledger is the single interface both backends implement.  Every
// mutating operation takes the authenticated caller explicitly, applies
// atomically (full success or no state change) and reports failures
// through the sentinel errors in this package.  Query methods observe a
// consistent snapshot and never see a booking mid-transition.
type Ledger interface {
	// Listing registry.
	CreateListing(ctx context.Context, caller model.Address, name, location, propertyType string, beds uint32, pricePerNight uint64) (*model.Listing, error)
	UpdateListing(ctx context.Context, caller model.Address, id uint64, name, location string, pricePerNight uint64) (*model.Listing, error)
	DeactivateListing(ctx context.Context, caller model.Address, id uint64) error
	GetListing(ctx context.Context, id uint64) (*model.Listing, error)
	ListingCount(ctx context.Context) (uint64, error)
	GetHostListings(ctx context.Context, host model.Address) ([]uint64, error)
	ActiveListings(ctx context.Context) ([]*model.Listing, error)

	// Booking escrow.
	CreateBooking(ctx context.Context, caller model.Address, listingID uint64, checkIn, checkOut int64, deposit uint64) (*model.Booking, error)
	CheckIn(ctx context.Context, caller model.Address, bookingID uint64) error
	CheckOut(ctx context.Context, caller model.Address, bookingID uint64) (*model.Booking, error)
	CancelBooking(ctx context.Context, caller model.Address, bookingID uint64) error
	GetBooking(ctx context.Context, id uint64) (*model.Booking, error)
	GetGuestBookings(ctx context.Context, guest model.Address) ([]uint64, error)
	GetHostBookings(ctx context.Context, host model.Address) ([]uint64, error)

	// Review ledger.
	CreateReview(ctx context.Context, caller model.Address, bookingID uint64, rating uint8, comment string) (*model.Review, error)
	RemoveReview(ctx context.Context, caller model.Address, id uint64) error
	GetReview(ctx context.Context, id uint64) (*model.Review, error)
	GetListingReviews(ctx context.Context, listingID uint64) ([]uint64, error)
	GetListingAverageRating(ctx context.Context, listingID uint64) (uint64, error)
	GetListingReviewCount(ctx context.Context, listingID uint64) (uint64, error)

	// Accounts and custody.
	GetAdmin(ctx context.Context) (model.Address, error)
	BalanceOf(ctx context.Context, addr model.Address) (uint64, error)
	EscrowBalance(ctx context.Context) (uint64, error)
	Credit(ctx context.Context, addr model.Address, amount uint64) error
}

// checkoutAllowed applies the policy for a settlement attempt.  The
// admin may always settle; the guest only under the permissive policy.
func checkoutAllowed(policy CheckoutPolicy, b *model.Booking, caller, admin model.Address) bool {
	if caller == b.Host || (!admin.IsZero() && caller == admin) {
		return true
	}
	return policy == CheckoutAnyParty && caller == b.Guest
}
