// internal/services/fee.go
package services

import "math/bits"

// Basis points denominator: 10_000 bps = 100%.
const feeDenominator = 10_000

// Fee computes floor(price * bps / 10_000) using a 128-bit intermediate so
// the multiply cannot wrap. Returns ErrArithmeticOverflow when the quotient
// itself does not fit in 64 bits.
func Fee(price uint64, bps uint16) (uint64, error) {
	if price == 0 || bps == 0 {
		return 0, nil
	}

	hi, lo := bits.Mul64(price, uint64(bps))
	if hi >= feeDenominator {
		// bits.Div64 panics on quotient overflow; reject instead.
		return 0, ErrArithmeticOverflow
	}

	quo, _ := bits.Div64(hi, lo, feeDenominator)
	return quo, nil
}
