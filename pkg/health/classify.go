package health

import "math"

// Tier is the performance class derived from a percentage.
type Tier string

const (
	TierLow     Tier = "LOW"
	TierAverage Tier = "AVERAGE"
	TierHigh    Tier = "HIGH"
)

// Thresholds that map a percentage to a tier.
const (
	ThresholdAverage = 50
	ThresholdHigh    = 75
)

const (
	ColorLow     = "darkred"
	ColorAverage = "darkgoldenrod"
	ColorHigh    = "darkgreen"
)

// Status is the classification of one report section.
type Status struct {
	Percentage int
	Tier       Tier
	Color      string
}

// Color returns the display color of the tier.
func (t Tier) Color() string {
	switch t {
	case TierHigh:
		return ColorHigh
	case TierAverage:
		return ColorAverage
	default:
		return ColorLow
	}
}

// Percentage returns trunc(current*100/max). A non-positive max yields 0.
func Percentage(current, max float64) int {
	if max <= 0 || math.IsNaN(current) || math.IsInf(current, 0) {
		return 0
	}

	return truncate(current * 100 / max)
}

// Classify computes the percentage of current against max and its tier.
func Classify(current, max float64) Status {
	return ClassifyPercentage(Percentage(current, max))
}

// ClassifyPercentage classifies an already computed percentage.
func ClassifyPercentage(percentage int) Status {
	tier := tierFromPercentage(percentage)

	return Status{
		Percentage: percentage,
		Tier:       tier,
		Color:      tier.Color(),
	}
}

// ClassifyReported classifies a percentage supplied by the client, truncating fractions.
func ClassifyReported(percentage float64) Status {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) {
		return ClassifyPercentage(0)
	}

	return ClassifyPercentage(truncate(percentage))
}

// truncate drops the fraction of v, saturating at ±MaxInt32 so huge ratios keep their sign.
func truncate(v float64) int {
	return int(math.Trunc(math.Max(math.Min(v, math.MaxInt32), -math.MaxInt32)))
}

func tierFromPercentage(percentage int) Tier {
	switch {
	case percentage >= ThresholdHigh:
		return TierHigh
	case percentage >= ThresholdAverage:
		return TierAverage
	default:
		return TierLow
	}
}
