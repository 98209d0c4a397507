package ledger

import (
	"context"
	"log"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// logging wraps a Ledger and records every mutating operation with its
// caller and outcome.  Cross-cutting concerns are applied uniformly
// here instead of per-method special cases inside the backends; reads
// pass through untouched.
type logging struct {
	next Ledger
}

// WithLogging decorates a ledger with operation logging.
func WithLogging(next Ledger) Ledger { return &logging{next: next} }

func logOp(op string, caller model.Address, err error, kv ...any) {
	if err != nil {
		log.Printf("ledger: %s caller=%s err=%v", op, caller, err)
		return
	}
	line := "ledger: " + op + " caller=" + caller.String() + " ok"
	if len(kv) > 0 {
		log.Printf("%s %v", line, kv)
		return
	}
	log.Print(line)
}

func (l *logging) CreateListing(ctx context.Context, caller model.Address, name, location, propertyType string, beds uint32, pricePerNight uint64) (*model.Listing, error) {
	out, err := l.next.CreateListing(ctx, caller, name, location, propertyType, beds, pricePerNight)
	if err != nil {
		logOp("createListing", caller, err)
	} else {
		logOp("createListing", caller, nil, "id", out.ID)
	}
	return out, err
}

func (l *logging) UpdateListing(ctx context.Context, caller model.Address, id uint64, name, location string, pricePerNight uint64) (*model.Listing, error) {
	out, err := l.next.UpdateListing(ctx, caller, id, name, location, pricePerNight)
	logOp("updateListing", caller, err, "id", id)
	return out, err
}

func (l *logging) DeactivateListing(ctx context.Context, caller model.Address, id uint64) error {
	err := l.next.DeactivateListing(ctx, caller, id)
	logOp("deactivateListing", caller, err, "id", id)
	return err
}

func (l *logging) CreateBooking(ctx context.Context, caller model.Address, listingID uint64, checkIn, checkOut int64, deposit uint64) (*model.Booking, error) {
	out, err := l.next.CreateBooking(ctx, caller, listingID, checkIn, checkOut, deposit)
	if err != nil {
		logOp("createBooking", caller, err, "listing", listingID)
	} else {
		logOp("createBooking", caller, nil, "id", out.ID, "total", out.TotalPrice)
	}
	return out, err
}

func (l *logging) CheckIn(ctx context.Context, caller model.Address, bookingID uint64) error {
	err := l.next.CheckIn(ctx, caller, bookingID)
	logOp("checkIn", caller, err, "booking", bookingID)
	return err
}

func (l *logging) CheckOut(ctx context.Context, caller model.Address, bookingID uint64) (*model.Booking, error) {
	out, err := l.next.CheckOut(ctx, caller, bookingID)
	if err != nil {
		logOp("checkOut", caller, err, "booking", bookingID)
	} else {
		logOp("checkOut", caller, nil, "booking", bookingID, "payout", out.HostPayout, "fee", out.ProtocolFee)
	}
	return out, err
}

func (l *logging) CancelBooking(ctx context.Context, caller model.Address, bookingID uint64) error {
	err := l.next.CancelBooking(ctx, caller, bookingID)
	logOp("cancelBooking", caller, err, "booking", bookingID)
	return err
}

func (l *logging) CreateReview(ctx context.Context, caller model.Address, bookingID uint64, rating uint8, comment string) (*model.Review, error) {
	out, err := l.next.CreateReview(ctx, caller, bookingID, rating, comment)
	logOp("createReview", caller, err, "booking", bookingID)
	return out, err
}

func (l *logging) RemoveReview(ctx context.Context, caller model.Address, id uint64) error {
	err := l.next.RemoveReview(ctx, caller, id)
	logOp("removeReview", caller, err, "id", id)
	return err
}

func (l *logging) Credit(ctx context.Context, addr model.Address, amount uint64) error {
	err := l.next.Credit(ctx, addr, amount)
	logOp("credit", addr, err, "amount", amount)
	return err
}

// Read-only queries pass straight through.

func (l *logging) GetListing(ctx context.Context, id uint64) (*model.Listing, error) {
	return l.next.GetListing(ctx, id)
}

func (l *logging) ListingCount(ctx context.Context) (uint64, error) {
	return l.next.ListingCount(ctx)
}

func (l *logging) GetHostListings(ctx context.Context, host model.Address) ([]uint64, error) {
	return l.next.GetHostListings(ctx, host)
}

func (l *logging) ActiveListings(ctx context.Context) ([]*model.Listing, error) {
	return l.next.ActiveListings(ctx)
}

func (l *logging) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	return l.next.GetBooking(ctx, id)
}

func (l *logging) GetGuestBookings(ctx context.Context, guest model.Address) ([]uint64, error) {
	return l.next.GetGuestBookings(ctx, guest)
}

func (l *logging) GetHostBookings(ctx context.Context, host model.Address) ([]uint64, error) {
	return l.next.GetHostBookings(ctx, host)
}

func (l *logging) GetReview(ctx context.Context, id uint64) (*model.Review, error) {
	return l.next.GetReview(ctx, id)
}

func (l *logging) GetListingReviews(ctx context.Context, listingID uint64) ([]uint64, error) {
	return l.next.GetListingReviews(ctx, listingID)
}

func (l *logging) GetListingAverageRating(ctx context.Context, listingID uint64) (uint64, error) {
	return l.next.GetListingAverageRating(ctx, listingID)
}

func (l *logging) GetListingReviewCount(ctx context.Context, listingID uint64) (uint64, error) {
	return l.next.GetListingReviewCount(ctx, listingID)
}

func (l *logging) GetAdmin(ctx context.Context) (model.Address, error) {
	return l.next.GetAdmin(ctx)
}

func (l *logging) BalanceOf(ctx context.Context, addr model.Address) (uint64, error) {
	return l.next.BalanceOf(ctx, addr)
}

func (l *logging) EscrowBalance(ctx context.Context) (uint64, error) {
	return l.next.EscrowBalance(ctx)
}
