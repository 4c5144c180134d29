package analyzer

import (
	"math"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/stats"
)

// Numeric feature names used across correlation output and chart series.
const (
	FeatureLength   = "length"
	FeatureHashtags = "hashtags"
	FeatureEmojis   = "emojis"
	FeatureMentions = "mentions"
	FeatureURLs     = "urls"
)

func (a *Analyzer) correlate(samples []sample) EngagementCorrelation {
	ec := EngagementCorrelation{
		ByFeature:  make(map[string]float64),
		Predictors: make(map[string]Predictor),
	}

	scores := make([]float64, len(samples))
	for i, sm := range samples {
		scores[i] = sm.score
	}

	pickers := map[string]func(features.FeatureSet) int{
		FeatureLength:   func(fs features.FeatureSet) int { return fs.Length },
		FeatureHashtags: func(fs features.FeatureSet) int { return fs.HashtagCount },
		FeatureEmojis:   func(fs features.FeatureSet) int { return fs.EmojiCount },
		FeatureMentions: func(fs features.FeatureSet) int { return fs.MentionCount },
		FeatureURLs:     func(fs features.FeatureSet) int { return fs.URLCount },
	}

	strongest := -1.0
	for name, pick := range pickers {
		xs := make([]float64, len(samples))
		for i, sm := range samples {
			xs[i] = float64(pick(sm.fs))
		}
		r := stats.Pearson(xs, scores)
		ec.ByFeature[name] = r
		abs := math.Abs(r)
		if abs > strongest || (abs == strongest && name < ec.Strongest) {
			strongest = abs
			ec.Strongest = name
		}
	}

	// Presence predictors only make sense for the countable extras, not for
	// raw length (every text has one).
	for _, name := range []string{FeatureHashtags, FeatureEmojis, FeatureMentions, FeatureURLs} {
		pick := pickers[name]
		var withSum, withoutSum float64
		var withN, withoutN int
		for _, sm := range samples {
			if pick(sm.fs) > 0 {
				withSum += sm.score
				withN++
			} else {
				withoutSum += sm.score
				withoutN++
			}
		}
		p := Predictor{Frequency: float64(withN) / float64(len(samples))}
		if withN > 0 {
			p.AvgWith = withSum / float64(withN)
		}
		if withoutN > 0 {
			p.AvgWithout = withoutSum / float64(withoutN)
		}
		p.Impact = p.AvgWith - p.AvgWithout
		ec.Predictors[name] = p
	}
	return ec
}
