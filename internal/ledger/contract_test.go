package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// Both backends implement the same contract, so the whole behavioral
// suite is written once against the Ledger interface and run per
// backend.  The factory returns a fresh empty ledger whose clock reads
// from *nowUnix, letting tests move time forward deterministically.
type ledgerFactory func(t *testing.T, nowUnix *int64) Ledger

const (
	testAdmin    = model.Address("0x00000000000000000000000000000000000000ad")
	testTreasury = model.Address("0x00000000000000000000000000000000000000fe")
	alice        = model.Address("0x000000000000000000000000000000000000a11c")
	bob          = model.Address("0x0000000000000000000000000000000000000b0b")
	carol        = model.Address("0x0000000000000000000000000000000000000ca1")
)

func runLedgerSuite(t *testing.T, newLedger ledgerFactory) {
	t.Run("ListingLifecycle", func(t *testing.T) { testListingLifecycle(t, newLedger) })
	t.Run("ListingValidation", func(t *testing.T) { testListingValidation(t, newLedger) })
	t.Run("ListingAuthorization", func(t *testing.T) { testListingAuthorization(t, newLedger) })
	t.Run("ListingIDsNeverReused", func(t *testing.T) { testListingIDsNeverReused(t, newLedger) })
	t.Run("BookingLifecycle", func(t *testing.T) { testBookingLifecycle(t, newLedger) })
	t.Run("BookingValidation", func(t *testing.T) { testBookingValidation(t, newLedger) })
	t.Run("BookingCancel", func(t *testing.T) { testBookingCancel(t, newLedger) })
	t.Run("CheckoutTiming", func(t *testing.T) { testCheckoutTiming(t, newLedger) })
	t.Run("CheckoutPolicy", func(t *testing.T) { testCheckoutPolicy(t, newLedger) })
	t.Run("EscrowConservation", func(t *testing.T) { testEscrowConservation(t, newLedger) })
	t.Run("Reviews", func(t *testing.T) { testReviews(t, newLedger) })
	t.Run("ReviewAggregates", func(t *testing.T) { testReviewAggregates(t, newLedger) })
}

// makeBooking creates a funded listing/booking pair: bob hosts, alice
// books nights nights starting at the current clock reading.
func makeBooking(t *testing.T, l Ledger, nowUnix int64, nights int64, price uint64) (*model.Listing, *model.Booking) {
	t.Helper()
	ctx := context.Background()
	listing, err := l.CreateListing(ctx, bob, "Cozy Beach House", "Miami", "house", 3, price)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	total := uint64(nights) * price
	if err := l.Credit(ctx, alice, total); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	b, err := l.CreateBooking(ctx, alice, listing.ID, nowUnix, nowUnix+nights*SecondsPerDay, total)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	return listing, b
}

func testListingLifecycle(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	created, err := l.CreateListing(ctx, bob, "Cozy Beach House", "Miami", "house", 3, 100)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("first listing id = %d, want 1", created.ID)
	}
	if created.Host != bob || !created.IsActive {
		t.Errorf("listing = %+v, want host=%s active", created, bob)
	}

	updated, err := l.UpdateListing(ctx, bob, created.ID, "Sunny Beach House", "Miami Beach", 120)
	if err != nil {
		t.Fatalf("UpdateListing: %v", err)
	}
	if updated.Name != "Sunny Beach House" || updated.Location != "Miami Beach" || updated.PricePerNight != 120 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Host != bob || updated.ID != created.ID {
		t.Errorf("update changed identity: %+v", updated)
	}

	if err := l.DeactivateListing(ctx, bob, created.ID); err != nil {
		t.Fatalf("DeactivateListing: %v", err)
	}
	got, err := l.GetListing(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetListing after deactivation: %v", err)
	}
	if got.IsActive {
		t.Error("listing still active after deactivation")
	}

	active, err := l.ActiveListings(ctx)
	if err != nil {
		t.Fatalf("ActiveListings: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("ActiveListings returned %d listings, want 0", len(active))
	}

	ids, err := l.GetHostListings(ctx, bob)
	if err != nil {
		t.Fatalf("GetHostListings: %v", err)
	}
	if len(ids) != 1 || ids[0] != created.ID {
		t.Errorf("GetHostListings = %v, want [%d]", ids, created.ID)
	}
}

func testListingValidation(t *testing.T, newLedger ledgerFactory) {
	now := time.Now().Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	cases := []struct {
		name     string
		lname    string
		location string
		price    uint64
		want     error
	}{
		{"empty name", "", "Miami", 100, ErrInvalidName},
		{"blank name", "   ", "Miami", 100, ErrInvalidName},
		{"empty location", "House", "", 100, ErrInvalidLocation},
		{"zero price", "House", "Miami", 0, ErrInvalidPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.CreateListing(ctx, bob, tc.lname, tc.location, "house", 1, tc.price); !errors.Is(err, tc.want) {
				t.Errorf("CreateListing = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := l.GetListing(ctx, 42); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("GetListing(42) = %v, want ErrListingNotFound", err)
	}
	if _, err := l.UpdateListing(ctx, bob, 42, "House", "Miami", 100); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("UpdateListing(42) = %v, want ErrListingNotFound", err)
	}
}

func testListingAuthorization(t *testing.T, newLedger ledgerFactory) {
	now := time.Now().Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	created, err := l.CreateListing(ctx, bob, "Cozy Beach House", "Miami", "house", 3, 100)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}

	if _, err := l.UpdateListing(ctx, carol, created.ID, "Stolen House", "Miami", 100); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("non-host update = %v, want ErrUnauthorized", err)
	}
	if err := l.DeactivateListing(ctx, carol, created.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("non-host deactivate = %v, want ErrUnauthorized", err)
	}
	// Moderation path: the admin may deactivate anyone's listing.
	if err := l.DeactivateListing(ctx, testAdmin, created.ID); err != nil {
		t.Errorf("admin deactivate = %v, want nil", err)
	}
}

func testListingIDsNeverReused(t *testing.T, newLedger ledgerFactory) {
	now := time.Now().Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	first, err := l.CreateListing(ctx, bob, "First", "Miami", "house", 1, 100)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if err := l.DeactivateListing(ctx, bob, first.ID); err != nil {
		t.Fatalf("DeactivateListing: %v", err)
	}
	second, err := l.CreateListing(ctx, bob, "Second", "Miami", "house", 1, 100)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if second.ID != first.ID+1 {
		t.Errorf("second id = %d, want %d; ids must never be reused", second.ID, first.ID+1)
	}
	count, err := l.ListingCount(ctx)
	if err != nil {
		t.Fatalf("ListingCount: %v", err)
	}
	if count != 2 {
		t.Errorf("ListingCount = %d, want 2 (deactivation does not shrink it)", count)
	}
}

func testBookingLifecycle(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	listing, b := makeBooking(t, l, now, 3, 100)
	if b.Status != model.BookingPending {
		t.Fatalf("new booking status = %v, want Pending", b.Status)
	}
	if b.TotalPrice != 300 || b.ProtocolFee != 7 || b.HostPayout != 293 {
		t.Fatalf("split = total %d fee %d payout %d, want 300/7/293", b.TotalPrice, b.ProtocolFee, b.HostPayout)
	}
	if b.Host != bob || b.Guest != alice || b.ListingID != listing.ID {
		t.Fatalf("booking parties wrong: %+v", b)
	}

	// Deposit left the guest and entered custody.
	if bal, _ := l.BalanceOf(ctx, alice); bal != 0 {
		t.Errorf("guest balance after booking = %d, want 0", bal)
	}
	if esc, _ := l.EscrowBalance(ctx); esc != 300 {
		t.Errorf("escrow = %d, want 300", esc)
	}

	if err := l.CheckIn(ctx, alice, b.ID); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	got, _ := l.GetBooking(ctx, b.ID)
	if got.Status != model.BookingCheckedIn {
		t.Fatalf("status after check-in = %v, want CheckedIn", got.Status)
	}
	// Check-in moves no funds.
	if esc, _ := l.EscrowBalance(ctx); esc != 300 {
		t.Errorf("escrow after check-in = %d, want 300", esc)
	}

	now += 4 * SecondsPerDay // past the checkout date
	done, err := l.CheckOut(ctx, bob, b.ID)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if done.Status != model.BookingCompleted {
		t.Fatalf("status after check-out = %v, want Completed", done.Status)
	}
	if bal, _ := l.BalanceOf(ctx, bob); bal != 293 {
		t.Errorf("host balance = %d, want 293", bal)
	}
	if bal, _ := l.BalanceOf(ctx, testTreasury); bal != 7 {
		t.Errorf("treasury balance = %d, want 7", bal)
	}
	if esc, _ := l.EscrowBalance(ctx); esc != 0 {
		t.Errorf("escrow after settlement = %d, want 0", esc)
	}

	// A completed booking never pays twice.
	if _, err := l.CheckOut(ctx, bob, b.ID); !errors.Is(err, ErrAlreadyFinal) {
		t.Errorf("second check-out = %v, want ErrAlreadyFinal", err)
	}
	if bal, _ := l.BalanceOf(ctx, bob); bal != 293 {
		t.Errorf("host balance after replay = %d, want 293", bal)
	}

	guestIDs, _ := l.GetGuestBookings(ctx, alice)
	hostIDs, _ := l.GetHostBookings(ctx, bob)
	if len(guestIDs) != 1 || guestIDs[0] != b.ID {
		t.Errorf("GetGuestBookings = %v, want [%d]", guestIDs, b.ID)
	}
	if len(hostIDs) != 1 || hostIDs[0] != b.ID {
		t.Errorf("GetHostBookings = %v, want [%d]", hostIDs, b.ID)
	}
}

func testBookingValidation(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	listing, err := l.CreateListing(ctx, bob, "Cozy Beach House", "Miami", "house", 3, 100)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}

	if _, err := l.CreateBooking(ctx, alice, 999, now, now+SecondsPerDay, 100); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("unknown listing = %v, want ErrListingNotFound", err)
	}
	if _, err := l.CreateBooking(ctx, alice, listing.ID, now, now, 0); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("equal dates = %v, want ErrInvalidDateRange", err)
	}
	if _, err := l.CreateBooking(ctx, alice, listing.ID, now+SecondsPerDay, now, 100); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("reversed dates = %v, want ErrInvalidDateRange", err)
	}

	// Deposit must equal nights * price exactly, checked before funds.
	if err := l.Credit(ctx, alice, 1000); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if _, err := l.CreateBooking(ctx, alice, listing.ID, now, now+2*SecondsPerDay, 199); !errors.Is(err, ErrPaymentMismatch) {
		t.Errorf("short deposit = %v, want ErrPaymentMismatch", err)
	}
	if _, err := l.CreateBooking(ctx, alice, listing.ID, now, now+2*SecondsPerDay, 201); !errors.Is(err, ErrPaymentMismatch) {
		t.Errorf("excess deposit = %v, want ErrPaymentMismatch", err)
	}

	// Correct deposit but an unfunded guest.
	if _, err := l.CreateBooking(ctx, carol, listing.ID, now, now+2*SecondsPerDay, 200); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("unfunded guest = %v, want ErrInsufficientFunds", err)
	}
	// Failed attempts must leave no partial state.
	if esc, _ := l.EscrowBalance(ctx); esc != 0 {
		t.Errorf("escrow after failed bookings = %d, want 0", esc)
	}
	if bal, _ := l.BalanceOf(ctx, alice); bal != 1000 {
		t.Errorf("alice balance after failed bookings = %d, want 1000", bal)
	}

	// Deactivated listings take no new bookings.
	if err := l.DeactivateListing(ctx, bob, listing.ID); err != nil {
		t.Fatalf("DeactivateListing: %v", err)
	}
	if _, err := l.CreateBooking(ctx, alice, listing.ID, now, now+2*SecondsPerDay, 200); !errors.Is(err, ErrListingInactive) {
		t.Errorf("inactive listing = %v, want ErrListingInactive", err)
	}
}

func testBookingCancel(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	_, b := makeBooking(t, l, now, 3, 100)

	if err := l.CancelBooking(ctx, bob, b.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("host cancel = %v, want ErrUnauthorized (only the guest may cancel)", err)
	}
	if err := l.CancelBooking(ctx, alice, b.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	got, _ := l.GetBooking(ctx, b.ID)
	if got.Status != model.BookingCancelled {
		t.Fatalf("status = %v, want Cancelled", got.Status)
	}
	// Full refund, fee included; host and treasury get nothing.
	if bal, _ := l.BalanceOf(ctx, alice); bal != 300 {
		t.Errorf("guest refund = %d, want 300", bal)
	}
	if bal, _ := l.BalanceOf(ctx, bob); bal != 0 {
		t.Errorf("host balance = %d, want 0", bal)
	}
	if esc, _ := l.EscrowBalance(ctx); esc != 0 {
		t.Errorf("escrow = %d, want 0", esc)
	}

	// Cancelled is terminal: no check-in, no check-out, no second cancel.
	if err := l.CheckIn(ctx, alice, b.ID); !errors.Is(err, ErrNotPending) {
		t.Errorf("check-in after cancel = %v, want ErrNotPending", err)
	}
	if _, err := l.CheckOut(ctx, bob, b.ID); !errors.Is(err, ErrAlreadyFinal) {
		t.Errorf("check-out after cancel = %v, want ErrAlreadyFinal", err)
	}
	if err := l.CancelBooking(ctx, alice, b.ID); !errors.Is(err, ErrAlreadyFinal) {
		t.Errorf("second cancel = %v, want ErrAlreadyFinal", err)
	}
	if bal, _ := l.BalanceOf(ctx, alice); bal != 300 {
		t.Errorf("guest balance after replay = %d, want 300 (no double refund)", bal)
	}
}

func testCheckoutTiming(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	_, b := makeBooking(t, l, now, 2, 100)
	if err := l.CheckIn(ctx, alice, b.ID); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	// One second before the checkout date: still too early.
	now = b.CheckOutDate - 1
	if _, err := l.CheckOut(ctx, bob, b.ID); !errors.Is(err, ErrTooEarly) {
		t.Errorf("early check-out = %v, want ErrTooEarly", err)
	}
	// At the boundary it settles.
	now = b.CheckOutDate
	if _, err := l.CheckOut(ctx, bob, b.ID); err != nil {
		t.Fatalf("CheckOut at boundary: %v", err)
	}
}

func testCheckoutPolicy(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	_, b := makeBooking(t, l, now, 2, 100)
	now = b.CheckOutDate

	// Under the host-only default the guest may not settle.
	if _, err := l.CheckOut(ctx, alice, b.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("guest check-out under host-only policy = %v, want ErrUnauthorized", err)
	}
	if _, err := l.CheckOut(ctx, carol, b.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("stranger check-out = %v, want ErrUnauthorized", err)
	}
	// The admin may always settle.
	if _, err := l.CheckOut(ctx, testAdmin, b.ID); err != nil {
		t.Fatalf("admin check-out: %v", err)
	}
}

// The custody invariant: escrow always equals the sum of TotalPrice over
// non-terminal bookings, at every step of a mixed workload.
func testEscrowConservation(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	listing, err := l.CreateListing(ctx, bob, "Cozy Beach House", "Miami", "house", 3, 100)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if err := l.Credit(ctx, alice, 10_000); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := l.Credit(ctx, carol, 10_000); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	b1, err := l.CreateBooking(ctx, alice, listing.ID, now, now+2*SecondsPerDay, 200)
	if err != nil {
		t.Fatalf("CreateBooking b1: %v", err)
	}
	b2, err := l.CreateBooking(ctx, carol, listing.ID, now, now+3*SecondsPerDay, 300)
	if err != nil {
		t.Fatalf("CreateBooking b2: %v", err)
	}
	if esc, _ := l.EscrowBalance(ctx); esc != 500 {
		t.Fatalf("escrow = %d, want 500 (both bookings pending)", esc)
	}

	if err := l.CancelBooking(ctx, alice, b1.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if esc, _ := l.EscrowBalance(ctx); esc != 300 {
		t.Fatalf("escrow = %d, want 300 after cancel", esc)
	}

	now += 4 * SecondsPerDay
	if _, err := l.CheckOut(ctx, bob, b2.ID); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if esc, _ := l.EscrowBalance(ctx); esc != 0 {
		t.Fatalf("escrow = %d, want 0 after settlement", esc)
	}

	// Everything credited is now held somewhere; nothing minted or burned.
	var sum uint64
	for _, a := range []model.Address{alice, bob, carol, testTreasury} {
		bal, _ := l.BalanceOf(ctx, a)
		sum += bal
	}
	if sum != 20_000 {
		t.Fatalf("total balances = %d, want 20000", sum)
	}
}

func testReviews(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	listing, b := makeBooking(t, l, now, 2, 100)

	// No review before completion.
	if _, err := l.CreateReview(ctx, alice, b.ID, 5, "great"); !errors.Is(err, ErrBookingNotComplete) {
		t.Errorf("review of pending booking = %v, want ErrBookingNotComplete", err)
	}

	now = b.CheckOutDate
	if _, err := l.CheckOut(ctx, bob, b.ID); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}

	// Only the guest reviews.
	if _, err := l.CreateReview(ctx, bob, b.ID, 5, "I host myself"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("host review = %v, want ErrUnauthorized", err)
	}
	for _, bad := range []uint8{0, 6} {
		if _, err := l.CreateReview(ctx, alice, b.ID, bad, "x"); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %d = %v, want ErrInvalidRating", bad, err)
		}
	}

	r, err := l.CreateReview(ctx, alice, b.ID, 4, "lovely stay")
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if r.ListingID != listing.ID || r.Reviewer != alice || r.Rating != 4 {
		t.Fatalf("review = %+v", r)
	}

	// Moderation hides the review from aggregates but keeps the record.
	if err := l.RemoveReview(ctx, carol, r.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("stranger remove = %v, want ErrUnauthorized", err)
	}
	if err := l.RemoveReview(ctx, testAdmin, r.ID); err != nil {
		t.Fatalf("admin RemoveReview: %v", err)
	}
	got, err := l.GetReview(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReview after removal: %v", err)
	}
	if got.IsActive {
		t.Error("review still active after removal")
	}
	ids, _ := l.GetListingReviews(ctx, listing.ID)
	if len(ids) != 0 {
		t.Errorf("GetListingReviews = %v, want empty after removal", ids)
	}
	if avg, _ := l.GetListingAverageRating(ctx, listing.ID); avg != 0 {
		t.Errorf("average with no active reviews = %d, want 0", avg)
	}
}

func testReviewAggregates(t *testing.T, newLedger ledgerFactory) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	l := newLedger(t, &now)
	ctx := context.Background()

	listing, err := l.CreateListing(ctx, bob, "Cozy Beach House", "Miami", "house", 3, 100)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	// Two guests complete stays and rate 4 and 5.
	ratings := map[model.Address]uint8{alice: 4, carol: 5}
	for guest, rating := range ratings {
		if err := l.Credit(ctx, guest, 200); err != nil {
			t.Fatalf("Credit: %v", err)
		}
		b, err := l.CreateBooking(ctx, guest, listing.ID, now, now+2*SecondsPerDay, 200)
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		now = b.CheckOutDate
		if _, err := l.CheckOut(ctx, bob, b.ID); err != nil {
			t.Fatalf("CheckOut: %v", err)
		}
		if _, err := l.CreateReview(ctx, guest, b.ID, rating, "stay"); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	// Mean of 4 and 5 scaled by 100, floored: 450.
	avg, err := l.GetListingAverageRating(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListingAverageRating: %v", err)
	}
	if avg != 450 {
		t.Errorf("average = %d, want 450", avg)
	}
	count, err := l.GetListingReviewCount(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListingReviewCount: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
