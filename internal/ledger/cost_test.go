package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeasureDelta(t *testing.T) {
	require.Equal(t, int64(0), MeasureDelta(100, 100))
	require.Equal(t, int64(42), MeasureDelta(100, 142))
	require.Equal(t, int64(-42), MeasureDelta(142, 100))
	require.Equal(t, int64(100), MeasureDelta(0, 100))
}

func TestCostOfNeverChargesForShrink(t *testing.T) {
	require.Equal(t, uint64(0), CostOf(0, 100))
	require.Equal(t, uint64(0), CostOf(-1, 100))
	require.Equal(t, uint64(0), CostOf(-1<<40, 100))
}

func TestCostOfStrictlyIncreasing(t *testing.T) {
	const price = 100
	prev := CostOf(0, price)
	for delta := int64(1); delta <= 1024; delta++ {
		c := CostOf(delta, price)
		require.Greater(t, c, prev, "cost must grow with delta %d", delta)
		prev = c
	}
	require.Equal(t, uint64(100), CostOf(1, price))
	require.Equal(t, uint64(102400), CostOf(1024, price))
}
