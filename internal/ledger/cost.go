package ledger

// MeasureDelta returns the signed byte delta between two footprint readings.
// Negative when the mutation shrank storage.
func MeasureDelta(before, after uint64) int64 {
	if after >= before {
		return int64(after - before)
	}
	return -int64(before - after)
}

// CostOf converts a byte delta into a payment amount at the given per-byte
// price. Shrinking storage never charges: any delta <= 0 costs zero.
func CostOf(delta int64, pricePerByte uint64) uint64 {
	if delta <= 0 {
		return 0
	}
	return uint64(delta) * pricePerByte
}
