package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
)

func (a *Analyzer) timePatterns(samples []sample) TimePatterns {
	tp := TimePatterns{
		HourlyDistribution:  make([]int, 24),
		HourlyAvgEngagement: make([]float64, 24),
		DailyDistribution:   make([]int, 7),
		DailyAvgEngagement:  make([]float64, 7),
	}

	hourSums := make([]float64, 24)
	daySums := make([]float64, 7)
	for _, sm := range samples {
		// Records without a usable timestamp are excluded from time buckets.
		if sm.fs.Hour < 0 {
			continue
		}
		tp.HourlyDistribution[sm.fs.Hour]++
		hourSums[sm.fs.Hour] += sm.score
		tp.DailyDistribution[sm.fs.Weekday]++
		daySums[sm.fs.Weekday] += sm.score
	}
	for h := 0; h < 24; h++ {
		if tp.HourlyDistribution[h] > 0 {
			tp.HourlyAvgEngagement[h] = hourSums[h] / float64(tp.HourlyDistribution[h])
		}
	}
	for d := 0; d < 7; d++ {
		if tp.DailyDistribution[d] > 0 {
			tp.DailyAvgEngagement[d] = daySums[d] / float64(tp.DailyDistribution[d])
		}
	}

	tp.BestHours = topBuckets(tp.HourlyAvgEngagement, tp.HourlyDistribution, a.cfg.TopN)
	tp.BestDays = topBuckets(tp.DailyAvgEngagement, tp.DailyDistribution, a.cfg.TopN)
	return tp
}

// topBuckets ranks occupied buckets by average engagement, highest first,
// breaking ties toward the earlier bucket.
func topBuckets(avgs []float64, counts []int, n int) []int {
	idx := make([]int, 0, len(avgs))
	for i := range avgs {
		if counts[i] > 0 {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(i, j int) bool {
		if avgs[idx[i]] != avgs[idx[j]] {
			return avgs[idx[i]] > avgs[idx[j]]
		}
		return idx[i] < idx[j]
	})
	if len(idx) > n {
		idx = idx[:n]
	}
	return idx
}

var wordRe = regexp.MustCompile(`[a-z0-9']+`)

// stopwords excluded from the vocabulary tables.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "i": {}, "if": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "just": {}, "me": {}, "my": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "our": {}, "she": {}, "so": {}, "that": {},
	"the": {}, "their": {}, "them": {}, "they": {}, "this": {}, "to": {},
	"was": {}, "we": {}, "were": {}, "will": {}, "with": {}, "you": {},
	"your": {},
}

const (
	topWordLimit   = 20
	topPhraseLimit = 10
)

func (a *Analyzer) contentPatterns(samples []sample) ContentPatterns {
	cp := ContentPatterns{
		TypeDistribution:  make(map[features.Tone]int),
		TypeAvgEngagement: make(map[features.Tone]float64),
	}

	wordCounts := make(map[string]int)
	phraseCounts := make(map[string]int)
	typeSums := make(map[features.Tone]float64)

	for _, sm := range samples {
		words := tokenize(sm.rec.Text)
		for _, w := range words {
			wordCounts[w]++
		}
		for i := 0; i+1 < len(words); i++ {
			phraseCounts[words[i]+" "+words[i+1]]++
		}

		ct := sm.fs.ContentType
		cp.TypeDistribution[ct]++
		typeSums[ct] += sm.score
	}
	for ct, count := range cp.TypeDistribution {
		cp.TypeAvgEngagement[ct] = typeSums[ct] / float64(count)
	}

	cp.TopWords = rankCounts(wordCounts, topWordLimit)
	cp.TopPhrases = rankCounts(phraseCounts, topPhraseLimit)
	return cp
}

// tokenize lowercases, strips urls/mentions/hashtag markers, and filters
// stopwords and single-character tokens.
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	lower = urlStripRe.ReplaceAllString(lower, " ")
	var out []string
	for _, w := range wordRe.FindAllString(lower, -1) {
		w = strings.Trim(w, "'")
		if len(w) < 2 {
			continue
		}
		if _, skip := stopwords[w]; skip {
			continue
		}
		out = append(out, w)
	}
	return out
}

var urlStripRe = regexp.MustCompile(`https?://\S+`)

func rankCounts(counts map[string]int, limit int) []WordCount {
	ranked := make([]WordCount, 0, len(counts))
	for text, count := range counts {
		ranked = append(ranked, WordCount{Text: text, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Text < ranked[j].Text
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
