package stats

import "math"

// WilsonInterval returns the 95% Wilson score interval for a binomial
// proportion. It behaves better than the normal approximation on the small
// per-variant samples experiments usually have.
func WilsonInterval(successes, trials int) (lower, upper float64) {
	if trials == 0 {
		return 0, 0
	}

	const z = SignificanceThreshold
	p := float64(successes) / float64(trials)
	n := float64(trials)

	denom := 1 + z*z/n
	center := (p + z*z/(2*n)) / denom
	spread := (z / denom) * math.Sqrt(p*(1-p)/n+z*z/(4*n*n))

	lower = math.Max(0, center-spread)
	upper = math.Min(1, center+spread)
	return lower, upper
}
