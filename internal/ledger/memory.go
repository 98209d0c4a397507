package ledger

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// MemoryConfig carries the identities and policy a Memory ledger is
// initialized with.  Admin is the single moderation address fixed at
// startup; Treasury receives protocol fees on checkout.
type MemoryConfig struct {
	Admin    model.Address
	Treasury model.Address
	Policy   CheckoutPolicy
	Now      Clock
}

// Memory is the in-memory Ledger backend.  It is built on three entity
// tables plus an account balance map and a pooled escrow counter.  One
// RWMutex guards the whole state: checkout touches a booking row and two
// balance transfers that must stay consistent with the global custody
// invariant, so locking is ledger-wide rather than per entity.
type Memory struct {
	mu sync.RWMutex

	admin    model.Address
	treasury model.Address
	policy   CheckoutPolicy
	now      Clock

	listings *table[model.Listing]
	bookings *table[model.Booking]
	reviews  *table[model.Review]

	// the bookings table's owner index tracks the guest; this second
	// index tracks the host side of each booking.
	hostBookings map[model.Address][]uint64

	balances map[model.Address]uint64
	escrow   uint64 // pooled custody of all non-terminal bookings
}

// NewMemory constructs an empty in-memory ledger.  A nil clock defaults
// to the UTC wall clock.
func NewMemory(cfg MemoryConfig) *Memory {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Memory{
		admin:        cfg.Admin,
		treasury:     cfg.Treasury,
		policy:       cfg.Policy,
		now:          now,
		listings:     newTable[model.Listing](),
		bookings:     newTable[model.Booking](),
		reviews:      newTable[model.Review](),
		hostBookings: make(map[model.Address][]uint64),
		balances:     make(map[model.Address]uint64),
	}
}

var _ Ledger = (*Memory)(nil)

// ----- listing registry -----

func validateListingInput(name, location string, pricePerNight uint64) (string, string, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" {
		return "", "", ErrInvalidName
	}
	if location == "" {
		return "", "", ErrInvalidLocation
	}
	if pricePerNight == 0 {
		return "", "", ErrInvalidPrice
	}
	return name, location, nil
}

// CreateListing publishes a new listing owned by the caller.
func (m *Memory) CreateListing(_ context.Context, caller model.Address, name, location, propertyType string, beds uint32, pricePerNight uint64) (*model.Listing, error) {
	name, location, err := validateListingInput(name, location, pricePerNight)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l := &model.Listing{
		Host:          caller,
		Name:          name,
		Location:      location,
		PropertyType:  strings.TrimSpace(propertyType),
		Beds:          beds,
		PricePerNight: pricePerNight,
		IsActive:      true,
	}
	l.ID = m.listings.insert(caller, l)
	out := *l
	return &out, nil
}

// UpdateListing mutates a listing in place.  Only the host may update;
// the id and host are immutable.
func (m *Memory) UpdateListing(_ context.Context, caller model.Address, id uint64, name, location string, pricePerNight uint64) (*model.Listing, error) {
	name, location, err := validateListingInput(name, location, pricePerNight)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings.get(id)
	if !ok {
		return nil, ErrListingNotFound
	}
	if caller != l.Host {
		return nil, ErrUnauthorized
	}
	l.Name = name
	l.Location = location
	l.PricePerNight = pricePerNight
	out := *l
	return &out, nil
}

// DeactivateListing soft-deletes a listing.  The host or the admin may
// deactivate; the id and its history stay addressable.
func (m *Memory) DeactivateListing(_ context.Context, caller model.Address, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings.get(id)
	if !ok {
		return ErrListingNotFound
	}
	if caller != l.Host && (m.admin.IsZero() || caller != m.admin) {
		return ErrUnauthorized
	}
	l.IsActive = false
	return nil
}

// GetListing returns a listing by id, active or not.
func (m *Memory) GetListing(_ context.Context, id uint64) (*model.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.listings.get(id)
	if !ok {
		return nil, ErrListingNotFound
	}
	out := *l
	return &out, nil
}

// ListingCount returns the highest listing id ever assigned.
func (m *Memory) ListingCount(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listings.counter, nil
}

// GetHostListings returns the host's listing ids in insertion order.
func (m *Memory) GetHostListings(_ context.Context, host model.Address) ([]uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listings.idsByOwner(host), nil
}

// ActiveListings returns every active listing in insertion order.
func (m *Memory) ActiveListings(_ context.Context) ([]*model.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Listing, 0)
	m.listings.all(func(_ uint64, l *model.Listing) bool {
		if l.IsActive {
			cp := *l
			out = append(out, &cp)
		}
		return true
	})
	return out, nil
}

// ----- booking escrow -----

// CreateBooking validates the listing and dates, computes the price and
// fee split, then moves the deposit from the caller's balance into the
// escrow pool and inserts the booking as Pending.  All checks run before
// any state changes, so a failure leaves nothing behind.
func (m *Memory) CreateBooking(_ context.Context, caller model.Address, listingID uint64, checkIn, checkOut int64, deposit uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings.get(listingID)
	if !ok {
		return nil, ErrListingNotFound
	}
	if !l.IsActive {
		return nil, ErrListingInactive
	}
	if checkOut <= checkIn {
		return nil, ErrInvalidDateRange
	}
	total, ok := TotalPrice(Nights(checkIn, checkOut), l.PricePerNight)
	if !ok {
		return nil, ErrInvalidPrice
	}
	if deposit != total {
		return nil, ErrPaymentMismatch
	}
	if m.balances[caller] < deposit {
		return nil, ErrInsufficientFunds
	}
	fee, payout := SplitFee(total)
	b := &model.Booking{
		ListingID:    listingID,
		Guest:        caller,
		Host:         l.Host, // copied now; a later listing transfer must not change this booking
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   total,
		ProtocolFee:  fee,
		HostPayout:   payout,
		Status:       model.BookingPending,
		CreatedAt:    m.now().Unix(),
	}
	m.balances[caller] -= deposit
	m.escrow += total
	b.ID = m.bookings.insert(caller, b)
	m.hostIndexAdd(b.Host, b.ID)
	out := *b
	return &out, nil
}

func (m *Memory) hostIndexAdd(host model.Address, id uint64) {
	m.hostBookings[host] = append(m.hostBookings[host], id)
}

// CheckIn marks a pending booking as checked in.  Only the guest may
// check in and no funds move.
func (m *Memory) CheckIn(_ context.Context, caller model.Address, bookingID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings.get(bookingID)
	if !ok {
		return ErrBookingNotFound
	}
	if caller != b.Guest {
		return ErrUnauthorized
	}
	if b.Status != model.BookingPending {
		return ErrNotPending
	}
	b.Status = model.BookingCheckedIn
	return nil
}

// CheckOut settles a stay: once the checkout date has passed it releases
// the host payout and the protocol fee from escrow and marks the booking
// Completed.  This is the only operation that pays a host, and a second
// call fails ErrAlreadyFinal rather than ever paying twice.
func (m *Memory) CheckOut(_ context.Context, caller model.Address, bookingID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings.get(bookingID)
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status.Terminal() {
		return nil, ErrAlreadyFinal
	}
	if !checkoutAllowed(m.policy, b, caller, m.admin) {
		return nil, ErrUnauthorized
	}
	if m.now().Unix() < b.CheckOutDate {
		return nil, ErrTooEarly
	}
	m.escrow -= b.TotalPrice
	m.balances[b.Host] += b.HostPayout
	if !m.treasury.IsZero() {
		m.balances[m.treasury] += b.ProtocolFee
	}
	b.Status = model.BookingCompleted
	out := *b
	return &out, nil
}

// CancelBooking refunds the full deposit to the guest and marks the
// booking Cancelled.  No fee is retained on cancellation.
func (m *Memory) CancelBooking(_ context.Context, caller model.Address, bookingID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings.get(bookingID)
	if !ok {
		return ErrBookingNotFound
	}
	if caller != b.Guest {
		return ErrUnauthorized
	}
	if b.Status.Terminal() {
		return ErrAlreadyFinal
	}
	m.escrow -= b.TotalPrice
	m.balances[b.Guest] += b.TotalPrice
	b.Status = model.BookingCancelled
	return nil
}

// GetBooking returns a booking by id.
func (m *Memory) GetBooking(_ context.Context, id uint64) (*model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings.get(id)
	if !ok {
		return nil, ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

// GetGuestBookings returns the guest's booking ids in insertion order.
func (m *Memory) GetGuestBookings(_ context.Context, guest model.Address) ([]uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings.idsByOwner(guest), nil
}

// GetHostBookings returns the ids of bookings whose host is addr, in
// insertion order.
func (m *Memory) GetHostBookings(_ context.Context, host model.Address) ([]uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.hostBookings[host]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out, nil
}

// ----- review ledger -----

// CreateReview attaches a review to the listing of a completed booking.
// Only the booking's guest may review, and only after completion.
func (m *Memory) CreateReview(_ context.Context, caller model.Address, bookingID uint64, rating uint8, comment string) (*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings.get(bookingID)
	if !ok {
		return nil, ErrBookingNotFound
	}
	if caller != b.Guest {
		return nil, ErrUnauthorized
	}
	if b.Status != model.BookingCompleted {
		return nil, ErrBookingNotComplete
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	r := &model.Review{
		ListingID: b.ListingID,
		Reviewer:  caller,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: m.now().Unix(),
		IsActive:  true,
	}
	r.ID = m.reviews.insert(caller, r)
	out := *r
	return &out, nil
}

// RemoveReview soft-deletes a review.  The reviewer or the admin may
// remove it; the id stays addressable.
func (m *Memory) RemoveReview(_ context.Context, caller model.Address, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews.get(id)
	if !ok {
		return ErrReviewNotFound
	}
	if caller != r.Reviewer && (m.admin.IsZero() || caller != m.admin) {
		return ErrUnauthorized
	}
	r.IsActive = false
	return nil
}

// GetReview returns a review by id, active or not.
func (m *Memory) GetReview(_ context.Context, id uint64) (*model.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reviews.get(id)
	if !ok {
		return nil, ErrReviewNotFound
	}
	out := *r
	return &out, nil
}

// GetListingReviews returns the ids of active reviews for a listing in
// insertion order.
func (m *Memory) GetListingReviews(_ context.Context, listingID uint64) ([]uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uint64, 0)
	m.reviews.all(func(id uint64, r *model.Review) bool {
		if r.ListingID == listingID && r.IsActive {
			ids = append(ids, id)
		}
		return true
	})
	return ids, nil
}

// GetListingAverageRating averages the active reviews for a listing,
// scaled by 100 and floored (a 4.5 mean reports as 450).  Returns 0 when
// the listing has no active reviews.
func (m *Memory) GetListingAverageRating(_ context.Context, listingID uint64) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum, n uint64
	m.reviews.all(func(_ uint64, r *model.Review) bool {
		if r.ListingID == listingID && r.IsActive {
			sum += uint64(r.Rating)
			n++
		}
		return true
	})
	if n == 0 {
		return 0, nil
	}
	return sum * 100 / n, nil
}

// GetListingReviewCount counts the active reviews for a listing.
func (m *Memory) GetListingReviewCount(_ context.Context, listingID uint64) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n uint64
	m.reviews.all(func(_ uint64, r *model.Review) bool {
		if r.ListingID == listingID && r.IsActive {
			n++
		}
		return true
	})
	return n, nil
}

// ----- accounts -----

// GetAdmin returns the moderation address fixed at initialization.
func (m *Memory) GetAdmin(_ context.Context) (model.Address, error) {
	return m.admin, nil
}

// BalanceOf returns the spendable balance of an address.  Unknown
// addresses simply hold zero.
func (m *Memory) BalanceOf(_ context.Context, addr model.Address) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[addr], nil
}

// EscrowBalance returns the total funds currently in custody, which by
// invariant equals the sum of TotalPrice over all non-terminal bookings.
func (m *Memory) EscrowBalance(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.escrow, nil
}

// Credit adds funds to an address.  Used by the demo faucet and by
// deployment bootstrap; the escrow pool is not touched.
func (m *Memory) Credit(_ context.Context, addr model.Address, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[addr] += amount
	return nil
}
