package money

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorRoundTrip(t *testing.T) {
	cases := []int64{0, 1, 9, 10, 99, 100, 101, 6000, 29000, 950000, 1<<53 + 1, 9_223_372_036_854_775}
	for i := 0; i < 1000; i++ {
		cases = append(cases, rand.Int64N(1<<50))
	}
	for _, n := range cases {
		if got := ToMinor(FromMinor(n)); got != n {
			t.Fatalf("ToMinor(FromMinor(%d)) = %d", n, got)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"0.01", "0.10", "0.29", "60.00", "290.99", "9500.50", "1.005"} {
		d, err := Parse(s)
		require.NoError(t, err)
		back := FromMinor(ToMinor(d))
		if s == "1.005" {
			assert.Equal(t, "1.01", Format(back))
			continue
		}
		assert.True(t, d.Equal(back), "%s came back as %s", s, back)
	}
}

func TestFloatDriftDoesNotLeak(t *testing.T) {
	// 0.29 * 100 is 28.999999999999996 in float64.
	assert.Equal(t, int64(29), ToMinor(decimal.NewFromFloat(0.29)))
	assert.Equal(t, "60.00", Format(FromMinor(6000)))
}
