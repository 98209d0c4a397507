package model

// Listing is a property a host has published on the ledger.
// Listing ids are assigned sequentially starting at 1 and are never
// reused.  A deactivated listing keeps its id and stays readable so
// historical bookings remain resolvable.
//
// Fields:
//  ID            – sequential identifier, immutable once assigned.
//  Host          – account that created the listing; only the host (or
//                  the admin, for deactivation) may mutate it.
//  Name          – display name, non-empty.
//  Location      – free-form location text, non-empty.
//  PropertyType  – optional descriptive attribute (e.g. "apartment").
//  Beds          – optional bed count.
//  PricePerNight – nightly price in smallest currency subunits, > 0.
//  IsActive      – false once deactivated; inactive listings cannot be
//                  booked but remain addressable.
type Listing struct {
	ID            uint64  `json:"id"`
	Host          Address `json:"host"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	PropertyType  string  `json:"property_type,omitempty"`
	Beds          uint32  `json:"beds,omitempty"`
	PricePerNight uint64  `json:"price_per_night"`
	IsActive      bool    `json:"is_active"`
}
