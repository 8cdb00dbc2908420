// internal/services/fee_test.go
package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFee(t *testing.T) {
	tests := []struct {
		name  string
		price uint64
		bps   uint16
		want  uint64
	}{
		{"zero price", 0, 500, 0},
		{"zero bps", 1_000_000, 0, 0},
		{"five percent", 1_000_000, 500, 50_000},
		{"rounds down", 999, 500, 49},
		{"one bps of one", 1, 1, 0},
		{"full rate", 1_000_000, 10_000, 1_000_000},
		{"large price", 2_000_000_000_000, 250, 50_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fee(tt.price, tt.bps)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeeMaxPriceFullRate(t *testing.T) {
	// At the full rate the fee is the price itself, even at the top of the
	// uint64 range: the quotient is exactly MaxUint64 and still fits.
	got, err := Fee(math.MaxUint64, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got)
}

func TestFeeOverflow(t *testing.T) {
	// A rate above the denominator makes the quotient exceed 64 bits. No
	// caller passes one, but the guard must reject it instead of letting
	// bits.Div64 panic.
	_, err := Fee(math.MaxUint64, math.MaxUint16)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestFeeMaxPriceLowRate(t *testing.T) {
	// The quotient still fits when the rate divides it back under 64 bits
	got, err := Fee(math.MaxUint64, 9_999)
	require.NoError(t, err)
	assert.Equal(t, uint64(18444899399302180659), got)
}
