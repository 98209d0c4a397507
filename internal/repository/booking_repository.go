package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// BookingRepo provides persistence for escrowed bookings.  Status is
// stored as its uppercase wire name and converted back to the enum on
// scan; amounts and dates are plain integers.
type BookingRepo struct{ db *sql.DB }

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, listing_id, guest, host, check_in_date, check_out_date,
	total_price, protocol_fee, host_payout, status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	var guest, host, status string
	if err := row.Scan(&b.ID, &b.ListingID, &guest, &host, &b.CheckInDate, &b.CheckOutDate,
		&b.TotalPrice, &b.ProtocolFee, &b.HostPayout, &status, &b.CreatedAt); err != nil {
		return nil, err
	}
	st, err := model.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	b.Guest = model.Address(guest)
	b.Host = model.Address(host)
	b.Status = st
	return &b, nil
}

// CreateTx inserts a booking and populates the generated id.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (listing_id, guest, host, check_in_date, check_out_date, total_price, protocol_fee, host_payout, status, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.ListingID, b.Guest.String(), b.Host.String(),
		b.CheckInDate, b.CheckOutDate, b.TotalPrice, b.ProtocolFee, b.HostPayout, b.Status.String(), b.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID returns a booking by id outside any transaction.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
}

// GetByIDTx returns a booking with a row lock held for the duration of
// the transaction, so a status transition and its fund movements cannot
// race a concurrent transition on the same booking.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	return scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = ? FOR UPDATE`, id))
}

// UpdateStatusTx records a status transition.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.BookingStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status.String(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// IDsByGuest returns a guest's booking ids in insertion order.
func (r *BookingRepo) IDsByGuest(ctx context.Context, guest model.Address) ([]uint64, error) {
	return queryIDs(ctx, r.db, `SELECT id FROM bookings WHERE guest = ? ORDER BY id`, guest.String())
}

// IDsByHost returns the ids of bookings hosted by addr in insertion order.
func (r *BookingRepo) IDsByHost(ctx context.Context, host model.Address) ([]uint64, error) {
	return queryIDs(ctx, r.db, `SELECT id FROM bookings WHERE host = ? ORDER BY id`, host.String())
}
