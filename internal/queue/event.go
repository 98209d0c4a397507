// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCompletedEvent is published when a booking checks out and its
// escrow is released. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// ledger.
type BookingCompletedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	ListingID   uint64 `json:"listing_id"`
	Guest       string `json:"guest"`
	Host        string `json:"host"`
	TotalPrice  uint64 `json:"total_price"`
	ProtocolFee uint64 `json:"protocol_fee"`
	HostPayout  uint64 `json:"host_payout"`
	CompletedAt string `json:"completed_at"`
}
