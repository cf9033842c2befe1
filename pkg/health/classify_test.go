package health

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		current, max   float64
		wantPercentage int
		wantTier       Tier
		wantColor      string
	}{
		{name: "low", current: 40, max: 100, wantPercentage: 40, wantTier: TierLow, wantColor: ColorLow},
		{name: "average", current: 60, max: 100, wantPercentage: 60, wantTier: TierAverage, wantColor: ColorAverage},
		{name: "high", current: 80, max: 100, wantPercentage: 80, wantTier: TierHigh, wantColor: ColorHigh},
		{name: "truncates instead of rounding", current: 149, max: 200, wantPercentage: 74, wantTier: TierAverage, wantColor: ColorAverage},
		{name: "exactly 50 is average", current: 8, max: 16, wantPercentage: 50, wantTier: TierAverage, wantColor: ColorAverage},
		{name: "just under 50 is low", current: 99.9, max: 200, wantPercentage: 49, wantTier: TierLow, wantColor: ColorLow},
		{name: "exactly 75 is high", current: 12, max: 16, wantPercentage: 75, wantTier: TierHigh, wantColor: ColorHigh},
		{name: "fractional capacities", current: 15.8, max: 32, wantPercentage: 49, wantTier: TierLow, wantColor: ColorLow},
		{name: "above max", current: 120, max: 100, wantPercentage: 120, wantTier: TierHigh, wantColor: ColorHigh},
		{name: "zero max", current: 10, max: 0, wantPercentage: 0, wantTier: TierLow, wantColor: ColorLow},
		{name: "negative max", current: 10, max: -5, wantPercentage: 0, wantTier: TierLow, wantColor: ColorLow},
		{name: "huge ratio saturates high", current: 1e20, max: 1, wantPercentage: math.MaxInt32, wantTier: TierHigh, wantColor: ColorHigh},
		{name: "ratio beyond int64 saturates high", current: 1e17, max: 1, wantPercentage: math.MaxInt32, wantTier: TierHigh, wantColor: ColorHigh},
		{name: "tiny max saturates high", current: 1, max: 1e-300, wantPercentage: math.MaxInt32, wantTier: TierHigh, wantColor: ColorHigh},
		{name: "huge negative current saturates low", current: -1e20, max: 1, wantPercentage: -math.MaxInt32, wantTier: TierLow, wantColor: ColorLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.current, tc.max)
			require.Equal(t, tc.wantPercentage, got.Percentage)
			require.Equal(t, tc.wantTier, got.Tier)
			require.Equal(t, tc.wantColor, got.Color)
		})
	}
}

// Every percentage from -10 to 150 lands in exactly the tier its thresholds define.
func TestClassifyPercentage_Boundaries(t *testing.T) {
	for p := -10; p <= 150; p++ {
		got := ClassifyPercentage(p)

		switch {
		case p < 50:
			require.Equal(t, TierLow, got.Tier, "percentage %d", p)
		case p < 75:
			require.Equal(t, TierAverage, got.Tier, "percentage %d", p)
		default:
			require.Equal(t, TierHigh, got.Tier, "percentage %d", p)
		}

		require.Equal(t, got.Tier.Color(), got.Color)
	}
}

func TestClassifyReported(t *testing.T) {
	require.Equal(t, Status{Percentage: 74, Tier: TierAverage, Color: ColorAverage}, ClassifyReported(74.9))
	require.Equal(t, Status{Percentage: 75, Tier: TierHigh, Color: ColorHigh}, ClassifyReported(75))
	require.Equal(t, Status{Percentage: 0, Tier: TierLow, Color: ColorLow}, ClassifyReported(math.NaN()))
	require.Equal(t, Status{Percentage: math.MaxInt32, Tier: TierHigh, Color: ColorHigh}, ClassifyReported(1e300))
	require.Equal(t, Status{Percentage: -math.MaxInt32, Tier: TierLow, Color: ColorLow}, ClassifyReported(-1e300))
}

func TestPercentage_NonFinite(t *testing.T) {
	require.Equal(t, 0, Percentage(math.Inf(1), 100))
	require.Equal(t, 0, Percentage(math.NaN(), 100))
}
