package utils

import (
	"errors"
	"math/big"
	"strings"
)

// Currency conversion between human-readable decimal units and the
// integer smallest-subunit representation (1 unit = 10^18 subunits).
// Stored ledger state is always integer subunits; these helpers exist
// only for the HTTP boundary, so request bodies and responses can speak
// decimals without floating point ever touching an amount.

// SubunitsPerUnit is the subunit scale of one whole currency unit.
const SubunitsPerUnit = 18

var subunitScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(SubunitsPerUnit), nil)

var (
	// ErrBadAmount is returned for unparseable or negative decimal input.
	ErrBadAmount = errors.New("invalid decimal amount")
	// ErrAmountPrecision is returned when the decimal carries more than
	// 18 fractional digits and cannot be represented exactly.
	ErrAmountPrecision = errors.New("amount has too many decimal places")
	// ErrAmountRange is returned when the subunit value overflows uint64.
	ErrAmountRange = errors.New("amount out of range")
)

// ToSubunits parses a non-negative decimal string ("0.15") into
// subunits.  Conversion is exact; precision loss is an error, never a
// rounding.
func ToSubunits(dec string) (uint64, error) {
	dec = strings.TrimSpace(dec)
	if dec == "" || strings.HasPrefix(dec, "-") || strings.HasPrefix(dec, "+") {
		return 0, ErrBadAmount
	}
	whole, frac, _ := strings.Cut(dec, ".")
	if whole == "" && frac == "" {
		return 0, ErrBadAmount
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > SubunitsPerUnit {
		return 0, ErrAmountPrecision
	}
	// Right-pad the fraction to 18 digits so whole+frac reads as subunits.
	frac += strings.Repeat("0", SubunitsPerUnit-len(frac))
	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return 0, ErrBadAmount
	}
	if !n.IsUint64() {
		return 0, ErrAmountRange
	}
	return n.Uint64(), nil
}

// FromSubunits renders subunits as a decimal string with trailing
// fractional zeros trimmed ("150000000000000000" -> "0.15").
func FromSubunits(subunits uint64) string {
	n := new(big.Int).SetUint64(subunits)
	whole, frac := new(big.Int).QuoRem(n, subunitScale, new(big.Int))
	if frac.Sign() == 0 {
		return whole.String()
	}
	fracStr := frac.String()
	if pad := SubunitsPerUnit - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")
	return whole.String() + "." + fracStr
}
