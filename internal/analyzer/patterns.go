package analyzer

import (
	"sort"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/stats"
)

func (a *Analyzer) lengthPatterns(samples []sample) LengthPatterns {
	lp := LengthPatterns{
		Distribution:  make(map[features.LengthCategory]int),
		AvgEngagement: make(map[features.LengthCategory]float64),
	}

	sums := make(map[features.LengthCategory]float64)
	lengths := make([]float64, len(samples))
	scores := make([]float64, len(samples))
	for i, sm := range samples {
		cat := sm.fs.LengthCategory
		lp.Distribution[cat]++
		sums[cat] += sm.score
		lengths[i] = float64(sm.fs.Length)
		scores[i] = sm.score
	}
	for cat, sum := range sums {
		lp.AvgEngagement[cat] = sum / float64(lp.Distribution[cat])
	}
	lp.Correlation = stats.Pearson(lengths, scores)

	best := features.LengthShort
	bestAvg := -1.0
	for _, cat := range []features.LengthCategory{features.LengthShort, features.LengthMedium, features.LengthLong} {
		if avg, ok := lp.AvgEngagement[cat]; ok && avg > bestAvg {
			best, bestAvg = cat, avg
		}
	}
	lp.OptimalRange.Min, lp.OptimalRange.Max = best.Bounds()
	return lp
}

func (a *Analyzer) tonePatterns(samples []sample) TonePatterns {
	tp := TonePatterns{
		Distribution:  make(map[features.Tone]int),
		AvgEngagement: make(map[features.Tone]float64),
		Effectiveness: make(map[features.Tone]float64),
	}

	sums := make(map[features.Tone]float64)
	examples := make(map[features.Tone]string)
	total := 0.0
	for _, sm := range samples {
		tone := sm.fs.Tone
		tp.Distribution[tone]++
		sums[tone] += sm.score
		total += sm.score
		if _, ok := examples[tone]; !ok {
			examples[tone] = sm.rec.Text
		}
	}

	globalAvg := total / float64(len(samples))
	for tone, count := range tp.Distribution {
		avg := sums[tone] / float64(count)
		tp.AvgEngagement[tone] = avg
		if globalAvg > 0 {
			tp.Effectiveness[tone] = avg / globalAvg
		}
	}

	for tone, eff := range tp.Effectiveness {
		tp.TopTones = append(tp.TopTones, ToneRank{Tone: tone, Effectiveness: eff, Example: examples[tone]})
	}
	sort.Slice(tp.TopTones, func(i, j int) bool {
		if tp.TopTones[i].Effectiveness != tp.TopTones[j].Effectiveness {
			return tp.TopTones[i].Effectiveness > tp.TopTones[j].Effectiveness
		}
		return tp.TopTones[i].Tone < tp.TopTones[j].Tone
	})
	if len(tp.TopTones) > a.cfg.TopN {
		tp.TopTones = tp.TopTones[:a.cfg.TopN]
	}
	return tp
}

func (a *Analyzer) formatPatterns(samples []sample) FormatPatterns {
	count := func(pick func(features.FeatureSet) int) FormatPattern {
		fp := FormatPattern{
			Distribution:  make(map[int]int),
			AvgEngagement: make(map[int]float64),
		}
		sums := make(map[int]float64)
		for _, sm := range samples {
			n := pick(sm.fs)
			fp.Distribution[n]++
			sums[n] += sm.score
		}
		bestAvg := -1.0
		for n, sum := range sums {
			avg := sum / float64(fp.Distribution[n])
			fp.AvgEngagement[n] = avg
			// Ties resolve toward the lower count value.
			if avg > bestAvg || (avg == bestAvg && n < fp.OptimalCount) {
				fp.OptimalCount, bestAvg = n, avg
			}
		}
		return fp
	}

	return FormatPatterns{
		Hashtags: count(func(fs features.FeatureSet) int { return fs.HashtagCount }),
		Emojis:   count(func(fs features.FeatureSet) int { return fs.EmojiCount }),
		URLs:     count(func(fs features.FeatureSet) int { return fs.URLCount }),
		Mentions: count(func(fs features.FeatureSet) int { return fs.MentionCount }),
	}
}
