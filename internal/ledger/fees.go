package ledger

// Currency arithmetic is integer-only.  The platform fee is expressed in
// basis points so no floating point ever touches a stored amount.

const (
	// SecondsPerDay is the fixed day length used for night counting.
	SecondsPerDay = 86400
	// FeeBasisPoints is the platform fee: 250 bps = 2.5%.
	FeeBasisPoints = 250
	// bpsDenominator is the basis-point scale.
	bpsDenominator = 10000
)

// Nights returns the number of nights covered by [checkIn, checkOut),
// counting any partial day as a full night.  Callers must have already
// validated checkOut > checkIn.
func Nights(checkIn, checkOut int64) uint64 {
	span := checkOut - checkIn
	return uint64((span + SecondsPerDay - 1) / SecondsPerDay)
}

// SplitFee computes floor(total * FeeBasisPoints / 10000) and the host
// payout remainder.  The split is done per 10000-subunit chunk so the
// intermediate product never overflows uint64 even for amounts near the
// 10^18-subunit range; the result is exactly the floored product.
func SplitFee(total uint64) (fee, payout uint64) {
	fee = (total/bpsDenominator)*FeeBasisPoints + (total%bpsDenominator)*FeeBasisPoints/bpsDenominator
	return fee, total - fee
}

// TotalPrice multiplies nights by the nightly price, reporting overflow
// instead of silently wrapping.
func TotalPrice(nights, pricePerNight uint64) (uint64, bool) {
	if nights == 0 || pricePerNight == 0 {
		return 0, true
	}
	total := nights * pricePerNight
	if total/nights != pricePerNight {
		return 0, false
	}
	return total, true
}
