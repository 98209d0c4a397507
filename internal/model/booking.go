package model

import "fmt"

// BookingStatus is the closed set of states a booking moves through.
// Pending and CheckedIn are live states whose funds sit in escrow;
// Completed and Cancelled are terminal and may never transition again.
type BookingStatus uint8

const (
	BookingPending BookingStatus = iota
	BookingCheckedIn
	BookingCompleted
	BookingCancelled
)

// Terminal reports whether no further transition is permitted.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// String returns the uppercase wire name of the status.  Unknown values
// format as UNKNOWN(n) rather than panicking.
func (s BookingStatus) String() string {
	switch s {
	case BookingPending:
		return "PENDING"
	case BookingCheckedIn:
		return "CHECKED_IN"
	case BookingCompleted:
		return "COMPLETED"
	case BookingCancelled:
		return "CANCELLED"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
}

// ParseBookingStatus converts a stored wire name back to a status.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch s {
	case "PENDING":
		return BookingPending, nil
	case "CHECKED_IN":
		return BookingCheckedIn, nil
	case "COMPLETED":
		return BookingCompleted, nil
	case "CANCELLED":
		return BookingCancelled, nil
	}
	return 0, fmt.Errorf("unknown booking status %q", s)
}

// MarshalJSON emits the status as its wire name so API clients never see
// the raw enum integer.
func (s BookingStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the wire name form.
func (s *BookingStatus) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("booking status must be a string, got %s", b)
	}
	v, err := ParseBookingStatus(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Booking records a guest's escrowed reservation of a listing for a
// date range.  The host is copied from the listing at creation time so
// a later listing transfer cannot retroactively change past bookings.
// All amounts are in smallest currency subunits and all timestamps are
// Unix seconds.
//
// Invariant: ProtocolFee + HostPayout == TotalPrice exactly, and while
// the booking is non-terminal the escrow holds exactly TotalPrice for it.
type Booking struct {
	ID           uint64        `json:"id"`
	ListingID    uint64        `json:"listing_id"`
	Guest        Address       `json:"guest"`
	Host         Address       `json:"host"`
	CheckInDate  int64         `json:"check_in_date"`
	CheckOutDate int64         `json:"check_out_date"`
	TotalPrice   uint64        `json:"total_price"`
	ProtocolFee  uint64        `json:"protocol_fee"`
	HostPayout   uint64        `json:"host_payout"`
	Status       BookingStatus `json:"status"`
	CreatedAt    int64         `json:"created_at"`
}
