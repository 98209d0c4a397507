package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// ReviewRepo provides persistence for stay reviews and the per-listing
// rating aggregate.
type ReviewRepo struct{ db *sql.DB }

// NewReviewRepo returns a ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = `id, listing_id, reviewer, rating, comment, created_at, is_active`

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var rv model.Review
	var reviewer string
	if err := row.Scan(&rv.ID, &rv.ListingID, &reviewer, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.IsActive); err != nil {
		return nil, err
	}
	rv.Reviewer = model.Address(reviewer)
	return &rv, nil
}

// CreateTx inserts a review and populates the generated id.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
	const q = `INSERT INTO reviews (listing_id, reviewer, rating, comment, created_at, is_active)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, rv.ListingID, rv.Reviewer.String(), rv.Rating, rv.Comment, rv.CreatedAt, rv.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// GetByID returns a review by id, active or not.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	return scanReview(r.db.QueryRowContext(ctx, `SELECT `+reviewCols+` FROM reviews WHERE id = ?`, id))
}

// GetByIDTx returns a review with a row lock.
func (r *ReviewRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Review, error) {
	return scanReview(tx.QueryRowContext(ctx, `SELECT `+reviewCols+` FROM reviews WHERE id = ? FOR UPDATE`, id))
}

// SetActiveTx flips the soft-delete flag.
func (r *ReviewRepo) SetActiveTx(ctx context.Context, tx *sql.Tx, id uint64, active bool) error {
	res, err := tx.ExecContext(ctx, `UPDATE reviews SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ActiveIDsByListing returns the active review ids for a listing in
// insertion order.
func (r *ReviewRepo) ActiveIDsByListing(ctx context.Context, listingID uint64) ([]uint64, error) {
	return queryIDs(ctx, r.db, `SELECT id FROM reviews WHERE listing_id = ? AND is_active = 1 ORDER BY id`, listingID)
}

// AggregateForListing returns the rating sum and count over the active
// reviews of a listing in one query, for the scaled-average computation.
func (r *ReviewRepo) AggregateForListing(ctx context.Context, listingID uint64) (sum, count uint64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(rating), 0), COUNT(*) FROM reviews WHERE listing_id = ? AND is_active = 1`,
		listingID).Scan(&sum, &count)
	return sum, count, err
}
