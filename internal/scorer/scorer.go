// Package scorer condenses an analysis result into a 0-100 effectiveness
// score with a letter grade, and renders chart-ready series for the
// presentation side.
package scorer

import (
	"math"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/analyzer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
)

// MaxScore is the score ceiling; factor weights below sum to it.
const MaxScore = 100

// Factor weights. Each factor contributes up to its weight in points.
const (
	WeightLength      = 25
	WeightTone        = 25
	WeightFormat      = 25
	WeightCorrelation = 25
)

// Report is the composite effectiveness score for one analysis.
type Report struct {
	TotalScore      float64                   `json:"total_score"`
	MaxScore        int                       `json:"max_score"`
	Percentage      float64                   `json:"percentage"`
	Grade           string                    `json:"grade"`
	Factors         map[string]float64        `json:"factors"`
	Recommendations []analyzer.Recommendation `json:"recommendations"`
}

// Score grades how exploitable the mined patterns are. An empty analysis
// scores zero with grade F.
func Score(res *analyzer.Result) Report {
	rep := Report{
		MaxScore: MaxScore,
		Factors:  map[string]float64{},
	}
	if res.Empty() {
		rep.Grade = Grade(0)
		return rep
	}

	rep.Factors["length"] = lengthFactor(res)
	rep.Factors["tone"] = toneFactor(res)
	rep.Factors["format"] = formatFactor(res)
	rep.Factors["correlation"] = correlationFactor(res)

	for _, pts := range rep.Factors {
		rep.TotalScore += pts
	}
	rep.Percentage = rep.TotalScore / MaxScore * 100
	rep.Grade = Grade(rep.Percentage)
	rep.Recommendations = res.Recommendations
	return rep
}

// Grade maps a percentage onto the letter scale. Boundaries are monotonic:
// >=93 A+, >=85 A, >=75 B+, >=50 C, >=40 D, else F.
func Grade(percentage float64) string {
	switch {
	case percentage >= 93:
		return "A+"
	case percentage >= 85:
		return "A"
	case percentage >= 75:
		return "B+"
	case percentage >= 50:
		return "C"
	case percentage >= 40:
		return "D"
	default:
		return "F"
	}
}

// lengthFactor rewards corpora where the optimal length band actually
// dominates engagement: the share of records already in the band. Ties
// resolve in the fixed short, medium, long order, matching the analyzer's
// optimal-range selection.
func lengthFactor(res *analyzer.Result) float64 {
	total := res.Summary.TotalReposts
	best := 0
	bestAvg := -1.0
	for _, cat := range []features.LengthCategory{features.LengthShort, features.LengthMedium, features.LengthLong} {
		avg, ok := res.LengthPatterns.AvgEngagement[cat]
		if !ok {
			continue
		}
		if avg > bestAvg {
			bestAvg = avg
			best = res.LengthPatterns.Distribution[cat]
		}
	}
	return WeightLength * float64(best) / float64(total)
}

// toneFactor scales with how far the top tone outperforms the corpus
// average; 2x average earns full points.
func toneFactor(res *analyzer.Result) float64 {
	if len(res.TonePatterns.TopTones) == 0 {
		return 0
	}
	eff := res.TonePatterns.TopTones[0].Effectiveness
	return WeightTone * clamp01((eff-1)/1)
}

// formatFactor counts how many format features show a positive presence
// impact on engagement.
func formatFactor(res *analyzer.Result) float64 {
	positive := 0
	for _, p := range res.Correlation.Predictors {
		if p.Impact > 0 {
			positive++
		}
	}
	if len(res.Correlation.Predictors) == 0 {
		return 0
	}
	return WeightFormat * float64(positive) / float64(len(res.Correlation.Predictors))
}

// correlationFactor scales with the strongest absolute feature correlation.
func correlationFactor(res *analyzer.Result) float64 {
	strongest := 0.0
	for _, r := range res.Correlation.ByFeature {
		strongest = math.Max(strongest, math.Abs(r))
	}
	return WeightCorrelation * clamp01(strongest)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
