package stats

import "math"

// TrendDirection summarizes the sign of a fitted slope.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// TrendFit is a least-squares line over an observation series plus a
// consistency measure describing how tightly the points hug the line.
type TrendFit struct {
	Slope     float64
	Intercept float64
	Direction TrendDirection
	// Consistency is 1 minus the coefficient of variation of the residuals
	// (residual spread over the series' mean magnitude), clamped to [0,1].
	// 1 means a perfectly clean trend, 0 means the fit explains nothing.
	Consistency float64
}

// LinearFit fits y = slope*x + intercept over implicit x = 0..n-1.
// Fewer than 2 points yields a flat, zero-consistency fit.
func LinearFit(ys []float64) TrendFit {
	n := len(ys)
	if n < 2 {
		return TrendFit{Direction: TrendStable}
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	mx, my := Mean(xs), Mean(ys)

	var num, den float64
	for i := 0; i < n; i++ {
		num += (xs[i] - mx) * (ys[i] - my)
		den += (xs[i] - mx) * (xs[i] - mx)
	}
	slope := num / den
	intercept := my - slope*mx

	residuals := make([]float64, n)
	for i := 0; i < n; i++ {
		residuals[i] = ys[i] - (slope*xs[i] + intercept)
	}

	fit := TrendFit{Slope: slope, Intercept: intercept}
	fit.Direction = direction(slope, my)
	fit.Consistency = consistency(residuals, my)
	return fit
}

// direction treats slopes within 1% of the series mean per step as stable.
func direction(slope, mean float64) TrendDirection {
	threshold := math.Abs(mean) * 0.01
	switch {
	case slope > threshold:
		return TrendImproving
	case slope < -threshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func consistency(residuals []float64, mean float64) float64 {
	if math.Abs(mean) < 1e-12 {
		return 0
	}
	cv := StdDev(residuals) / math.Abs(mean)
	return math.Max(0, math.Min(1, 1-cv))
}
