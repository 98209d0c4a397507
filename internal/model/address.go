package model

import "strings"

// Address identifies an account on the ledger.  Addresses are opaque
// comparable strings (0x-prefixed hex in practice) and are compared
// case-insensitively after normalization.  The ledger never derives an
// address from ambient state; callers always pass it in explicitly.
type Address string

// NormalizeAddress lowercases and trims an address so that two spellings
// of the same account always compare equal.
func NormalizeAddress(s string) Address {
	return Address(strings.ToLower(strings.TrimSpace(s)))
}

// IsZero reports whether the address is empty.
func (a Address) IsZero() bool { return a == "" }

func (a Address) String() string { return string(a) }
