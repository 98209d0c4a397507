// Package repository is the data-access layer behind the SQL ledger
// backend.  Each repository wraps a *sql.DB and mirrors one table;
// methods with a Tx suffix run inside a caller-managed transaction and
// lock the rows they read, because every mutating ledger operation is a
// single transaction over several tables.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// ListingRepo provides persistence for property listings.
type ListingRepo struct{ db *sql.DB }

// NewListingRepo returns a ListingRepo bound to the given database.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingCols = `id, host, name, location, property_type, beds, price_per_night, is_active`

func scanListing(row interface{ Scan(...any) error }) (*model.Listing, error) {
	var l model.Listing
	var host string
	if err := row.Scan(&l.ID, &host, &l.Name, &l.Location, &l.PropertyType, &l.Beds, &l.PricePerNight, &l.IsActive); err != nil {
		return nil, err
	}
	l.Host = model.Address(host)
	return &l, nil
}

// CreateTx inserts a listing and populates the generated id on the
// record.  Ids come from AUTO_INCREMENT, which never reuses values, so
// the monotonic-counter property holds across restarts.
func (r *ListingRepo) CreateTx(ctx context.Context, tx *sql.Tx, l *model.Listing) error {
	const q = `INSERT INTO listings (host, name, location, property_type, beds, price_per_night, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, l.Host.String(), l.Name, l.Location, l.PropertyType, l.Beds, l.PricePerNight, l.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByID returns a listing by id outside any transaction.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	return scanListing(r.db.QueryRowContext(ctx, `SELECT `+listingCols+` FROM listings WHERE id = ?`, id))
}

// GetByIDTx returns a listing by id with a row lock, so the price and
// host read during booking creation cannot change under the caller.
func (r *ListingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Listing, error) {
	return scanListing(tx.QueryRowContext(ctx, `SELECT `+listingCols+` FROM listings WHERE id = ? FOR UPDATE`, id))
}

// UpdateTx rewrites the mutable listing fields in place.
func (r *ListingRepo) UpdateTx(ctx context.Context, tx *sql.Tx, id uint64, name, location string, pricePerNight uint64) error {
	const q = `UPDATE listings SET name = ?, location = ?, price_per_night = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, name, location, pricePerNight, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetActiveTx flips the soft-delete flag.
func (r *ListingRepo) SetActiveTx(ctx context.Context, tx *sql.Tx, id uint64, active bool) error {
	res, err := tx.ExecContext(ctx, `UPDATE listings SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// IDsByHost returns a host's listing ids in insertion order.
func (r *ListingRepo) IDsByHost(ctx context.Context, host model.Address) ([]uint64, error) {
	return queryIDs(ctx, r.db, `SELECT id FROM listings WHERE host = ? ORDER BY id`, host.String())
}

// ListActive returns every active listing ordered by id.
func (r *ListingRepo) ListActive(ctx context.Context) ([]*model.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+listingCols+` FROM listings WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Count returns the highest id ever assigned (0 when empty).
func (r *ListingRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM listings`).Scan(&n)
	return n, err
}

// requireRow converts a zero-row UPDATE into sql.ErrNoRows so callers
// can treat "nothing matched" uniformly.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryIDs runs a single-column id query and collects the results.
func queryIDs(ctx context.Context, q queryer, query string, args ...any) ([]uint64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsNoRows reports whether err is the driver's missing-row sentinel.
func IsNoRows(err error) bool { return errors.Is(err, sql.ErrNoRows) }
