package model

// Review is feedback a guest leaves after a completed stay.  Reviews
// attach to the listing of the booking that earned them; the reviewer is
// copied from the booking's guest.  Soft deletion flips IsActive so the
// id stays addressable while the review stops counting toward the
// listing's rating aggregate.
type Review struct {
	ID        uint64  `json:"id"`
	ListingID uint64  `json:"listing_id"`
	Reviewer  Address `json:"reviewer"`
	Rating    uint8   `json:"rating"` // 1..5
	Comment   string  `json:"comment"`
	CreatedAt int64   `json:"created_at"`
	IsActive  bool    `json:"is_active"`
}
