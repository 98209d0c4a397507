package ledger

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/homestay-ledger/internal/model"
	"github.com/iliyamo/homestay-ledger/internal/repository"
)

// Store is the MySQL-backed Ledger.  Every mutating operation runs in a
// single database transaction with row locks on everything it reads, so
// a status transition and its fund movements commit or roll back as one
// unit, the same atomicity the in-memory backend gets from its mutex.
// Behavior must match Memory exactly; both run the same contract tests.
type Store struct {
	db       *sql.DB
	listings *repository.ListingRepo
	bookings *repository.BookingRepo
	reviews  *repository.ReviewRepo
	accounts *repository.AccountRepo

	admin    model.Address
	treasury model.Address
	policy   CheckoutPolicy
	now      Clock
}

// StoreConfig mirrors MemoryConfig for the SQL backend.
type StoreConfig struct {
	Admin    model.Address
	Treasury model.Address
	Policy   CheckoutPolicy
	Now      Clock
}

// NewStore builds a SQL ledger over an open database handle.
func NewStore(db *sql.DB, cfg StoreConfig) *Store {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Store{
		db:       db,
		listings: repository.NewListingRepo(db),
		bookings: repository.NewBookingRepo(db),
		reviews:  repository.NewReviewRepo(db),
		accounts: repository.NewAccountRepo(db),
		admin:    cfg.Admin,
		treasury: cfg.Treasury,
		policy:   cfg.Policy,
		now:      now,
	}
}

var _ Ledger = (*Store)(nil)

// inTx runs fn inside a transaction, rolling back unless fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ----- listing registry -----

func (s *Store) CreateListing(ctx context.Context, caller model.Address, name, location, propertyType string, beds uint32, pricePerNight uint64) (*model.Listing, error) {
	name, location, err := validateListingInput(name, location, pricePerNight)
	if err != nil {
		return nil, err
	}
	l := &model.Listing{
		Host:          caller,
		Name:          name,
		Location:      location,
		PropertyType:  strings.TrimSpace(propertyType),
		Beds:          beds,
		PricePerNight: pricePerNight,
		IsActive:      true,
	}
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		return s.listings.CreateTx(ctx, tx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) UpdateListing(ctx context.Context, caller model.Address, id uint64, name, location string, pricePerNight uint64) (*model.Listing, error) {
	name, location, err := validateListingInput(name, location, pricePerNight)
	if err != nil {
		return nil, err
	}
	var out *model.Listing
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		l, err := s.listings.GetByIDTx(ctx, tx, id)
		if err != nil {
			if repository.IsNoRows(err) {
				return ErrListingNotFound
			}
			return err
		}
		if caller != l.Host {
			return ErrUnauthorized
		}
		if err := s.listings.UpdateTx(ctx, tx, id, name, location, pricePerNight); err != nil {
			return err
		}
		l.Name, l.Location, l.PricePerNight = name, location, pricePerNight
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeactivateListing(ctx context.Context, caller model.Address, id uint64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		l, err := s.listings.GetByIDTx(ctx, tx, id)
		if err != nil {
			if repository.IsNoRows(err) {
				return ErrListingNotFound
			}
			return err
		}
		if caller != l.Host && (s.admin.IsZero() || caller != s.admin) {
			return ErrUnauthorized
		}
		return s.listings.SetActiveTx(ctx, tx, id, false)
	})
}

func (s *Store) GetListing(ctx context.Context, id uint64) (*model.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if repository.IsNoRows(err) {
		return nil, ErrListingNotFound
	}
	return l, err
}

func (s *Store) ListingCount(ctx context.Context) (uint64, error) {
	return s.listings.Count(ctx)
}

func (s *Store) GetHostListings(ctx context.Context, host model.Address) ([]uint64, error) {
	return s.listings.IDsByHost(ctx, host)
}

func (s *Store) ActiveListings(ctx context.Context) ([]*model.Listing, error) {
	return s.listings.ListActive(ctx)
}

// ----- booking escrow -----

func (s *Store) CreateBooking(ctx context.Context, caller model.Address, listingID uint64, checkIn, checkOut int64, deposit uint64) (*model.Booking, error) {
	var out *model.Booking
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		l, err := s.listings.GetByIDTx(ctx, tx, listingID)
		if err != nil {
			if repository.IsNoRows(err) {
				return ErrListingNotFound
			}
			return err
		}
		if !l.IsActive {
			return ErrListingInactive
		}
		if checkOut <= checkIn {
			return ErrInvalidDateRange
		}
		total, ok := TotalPrice(Nights(checkIn, checkOut), l.PricePerNight)
		if !ok {
			return ErrInvalidPrice
		}
		if deposit != total {
			return ErrPaymentMismatch
		}
		if err := s.accounts.DebitTx(ctx, tx, caller, deposit); err != nil {
			if errors.Is(err, repository.ErrInsufficientBalance) {
				return ErrInsufficientFunds
			}
			return err
		}
		if err := s.accounts.EscrowAddTx(ctx, tx, total); err != nil {
			return err
		}
		fee, payout := SplitFee(total)
		b := &model.Booking{
			ListingID:    listingID,
			Guest:        caller,
			Host:         l.Host,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			TotalPrice:   total,
			ProtocolFee:  fee,
			HostPayout:   payout,
			Status:       model.BookingPending,
			CreatedAt:    s.now().Unix(),
		}
		if err := s.bookings.CreateTx(ctx, tx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CheckIn(ctx context.Context, caller model.Address, bookingID uint64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		b, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
		if err != nil {
			if repository.IsNoRows(err) {
				return ErrBookingNotFound
			}
			return err
		}
		if caller != b.Guest {
			return ErrUnauthorized
		}
		if b.Status != model.BookingPending {
			return ErrNotPending
		}
		return s.bookings.UpdateStatusTx(ctx, tx, bookingID, model.BookingCheckedIn)
	})
}

func (s *Store) CheckOut(ctx context.Context, caller model.Address, bookingID uint64) (*model.Booking, error) {
	var out *model.Booking
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		b, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
		if err != nil {
			if repository.IsNoRows(err) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.Status.Terminal() {
			return ErrAlreadyFinal
		}
		if !checkoutAllowed(s.policy, b, caller, s.admin) {
			return ErrUnauthorized
		}
		if s.now().Unix() < b.CheckOutDate {
			return ErrTooEarly
		}
		if err := s.accounts.EscrowSubTx(ctx, tx, b.TotalPrice); err != nil {
			return err
		}
		if err := s.accounts.CreditTx(ctx, tx, b.Host, b.HostPayout); err != nil {
			return err
		}
		if !s.treasury.IsZero() {
			if err := s.accounts.CreditTx(ctx, tx, s.treasury, b.ProtocolFee); err != nil {
				return err
			}
		}
		if err := s.bookings.UpdateStatusTx(ctx, tx, bookingID, model.BookingCompleted); err != nil {
			return err
		}
		b.Status = model.BookingCompleted
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CancelBooking(ctx context.Context, caller model.Address, bookingID uint64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		b, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
		if err != nil {
			if repository.IsNoRows(err) {
				return ErrBookingNotFound
			}
			return err
		}
		if caller != b.Guest {
			return ErrUnauthorized
		}
		if b.Status.Terminal() {
			return ErrAlreadyFinal
		}
		if err := s.accounts.EscrowSubTx(ctx, tx, b.TotalPrice); err != nil {
			return err
		}
		if err := s.accounts.CreditTx(ctx, tx, b.Guest, b.TotalPrice); err != nil {
			return err
		}
		return s.bookings.UpdateStatusTx(ctx, tx, bookingID, model.BookingCancelled)
	})
}

func (s *Store) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if repository.IsNoRows(err) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

func (s *Store) GetGuestBookings(ctx context.Context, guest model.Address) ([]uint64, error) {
	return s.bookings.IDsByGuest(ctx, guest)
}

func (s *Store) GetHostBookings(ctx context.Context, host model.Address) ([]uint64, error) {
	return s.bookings.IDsByHost(ctx, host)
}

// ----- review ledger -----

func (s *Store) CreateReview(ctx context.Context, caller model.Address, bookingID uint64, rating uint8, comment string) (*model.Review, error) {
	var out *model.Review
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		b, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
		if err != nil {
			if repository.IsNoRows(err) {
				return ErrBookingNotFound
			}
			return err
		}
		if caller != b.Guest {
			return ErrUnauthorized
		}
		if b.Status != model.BookingCompleted {
			return ErrBookingNotComplete
		}
		if rating < 1 || rating > 5 {
			return ErrInvalidRating
		}
		r := &model.Review{
			ListingID: b.ListingID,
			Reviewer:  caller,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: s.now().Unix(),
			IsActive:  true,
		}
		if err := s.reviews.CreateTx(ctx, tx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) RemoveReview(ctx context.Context, caller model.Address, id uint64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		r, err := s.reviews.GetByIDTx(ctx, tx, id)
		if err != nil {
			if repository.IsNoRows(err) {
				return ErrReviewNotFound
			}
			return err
		}
		if caller != r.Reviewer && (s.admin.IsZero() || caller != s.admin) {
			return ErrUnauthorized
		}
		return s.reviews.SetActiveTx(ctx, tx, id, false)
	})
}

func (s *Store) GetReview(ctx context.Context, id uint64) (*model.Review, error) {
	r, err := s.reviews.GetByID(ctx, id)
	if repository.IsNoRows(err) {
		return nil, ErrReviewNotFound
	}
	return r, err
}

func (s *Store) GetListingReviews(ctx context.Context, listingID uint64) ([]uint64, error) {
	return s.reviews.ActiveIDsByListing(ctx, listingID)
}

func (s *Store) GetListingAverageRating(ctx context.Context, listingID uint64) (uint64, error) {
	sum, count, err := s.reviews.AggregateForListing(ctx, listingID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	return sum * 100 / count, nil
}

func (s *Store) GetListingReviewCount(ctx context.Context, listingID uint64) (uint64, error) {
	_, count, err := s.reviews.AggregateForListing(ctx, listingID)
	return count, err
}

// ----- accounts -----

func (s *Store) GetAdmin(ctx context.Context) (model.Address, error) {
	return s.admin, nil
}

func (s *Store) BalanceOf(ctx context.Context, addr model.Address) (uint64, error) {
	return s.accounts.Balance(ctx, addr)
}

func (s *Store) EscrowBalance(ctx context.Context) (uint64, error) {
	return s.accounts.Escrow(ctx)
}

func (s *Store) Credit(ctx context.Context, addr model.Address, amount uint64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.accounts.CreditTx(ctx, tx, addr, amount)
	})
}
