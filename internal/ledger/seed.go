package ledger

import (
	"context"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// DemoAccount is a pre-funded account seeded in demo mode so the API is
// usable without registering users or wiring a payment rail.
type DemoAccount struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Balance uint64 `json:"balance"` // subunits
}

// DemoAccounts mirrors the demo wallet roster: one guest and two hosts,
// balances in whole units of 10^18 subunits.
var DemoAccounts = []DemoAccount{
	{Address: "0x742d35cc6634c0532925a3b844bc9e7595f0beb", Name: "Alice", Balance: 10_000_000_000_000_000_000},
	{Address: "0x742d35cc6634c0532925a3b844bc9e7595f0bec", Name: "Bob", Balance: 5_000_000_000_000_000_000},
	{Address: "0x742d35cc6634c0532925a3b844bc9e7595f0bed", Name: "Charlie", Balance: 8_000_000_000_000_000_000},
}

// SeedDemo funds the demo accounts and publishes a few sample listings
// owned by the two host accounts, so a fresh demo server has data to
// browse.  Intended for the in-memory backend at startup; seeding is not
// part of the ledger contract.
func SeedDemo(ctx context.Context, l Ledger) error {
	for _, acc := range DemoAccounts {
		if err := l.Credit(ctx, model.NormalizeAddress(acc.Address), acc.Balance); err != nil {
			return err
		}
	}
	bob := model.NormalizeAddress(DemoAccounts[1].Address)
	charlie := model.NormalizeAddress(DemoAccounts[2].Address)
	seedListings := []struct {
		host     model.Address
		name     string
		location string
		ptype    string
		beds     uint32
		price    uint64
	}{
		{bob, "Downtown Loft", "San Francisco, CA", "loft", 2, 150_000_000_000_000_000},
		{charlie, "Beach House", "Malibu, CA", "house", 4, 250_000_000_000_000_000},
		{bob, "Mountain Cabin", "Aspen, CO", "cabin", 3, 200_000_000_000_000_000},
	}
	for _, s := range seedListings {
		if _, err := l.CreateListing(ctx, s.host, s.name, s.location, s.ptype, s.beds, s.price); err != nil {
			return err
		}
	}
	return nil
}
