package stats

import "math"

// SignificanceThreshold is the two-sided 95% z boundary.
const SignificanceThreshold = 1.96

// ZTestResult holds the outcome of a two-proportion z-test.
type ZTestResult struct {
	Z           float64
	Significant bool
	// Confidence is P(the observed difference is real), 0-1, derived from
	// the z-score via the standard normal CDF.
	Confidence float64
}

// TwoProportionZTest compares success rates between two variants under the
// pooled null hypothesis. Identical rates, empty samples, and zero pooled
// variance all report not-significant rather than NaN.
func TwoProportionZTest(aSuccesses, aTrials, bSuccesses, bTrials int) ZTestResult {
	if aTrials == 0 || bTrials == 0 {
		return ZTestResult{Confidence: 0.5}
	}

	pA := float64(aSuccesses) / float64(aTrials)
	pB := float64(bSuccesses) / float64(bTrials)

	pooled := float64(aSuccesses+bSuccesses) / float64(aTrials+bTrials)
	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(aTrials) + 1/float64(bTrials)))
	if se == 0 {
		// Both variants all-success or all-failure: no observable difference.
		return ZTestResult{Confidence: 0.5}
	}

	z := (pA - pB) / se
	return ZTestResult{
		Z:           z,
		Significant: math.Abs(z) > SignificanceThreshold,
		Confidence:  NormalCDF(math.Abs(z)),
	}
}

// NormalCDF approximates the cumulative distribution function of the
// standard normal distribution using Abramowitz and Stegun formula 7.1.26.
func NormalCDF(x float64) float64 {
	a1 := 0.254829592
	a2 := -0.284496736
	a3 := 1.421413741
	a4 := -1.453152027
	a5 := 1.061405429
	p := 0.3275911

	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x) / math.Sqrt(2)

	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)

	return 0.5 * (1.0 + sign*y)
}
