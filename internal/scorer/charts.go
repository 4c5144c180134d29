package scorer

import (
	"fmt"
	"sort"
	"time"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/analyzer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/stats"
)

// ChartKind selects which sub-analysis a series is drawn from.
type ChartKind string

const (
	ChartLength      ChartKind = "length"
	ChartTone        ChartKind = "tone"
	ChartHourly      ChartKind = "hourly"
	ChartWeekday     ChartKind = "weekday"
	ChartCorrelation ChartKind = "correlation"
)

// Series is one chart-ready value set. Normalized holds the same values
// min-max scaled onto [0,1] for mixed-axis rendering.
type Series struct {
	Kind       ChartKind `json:"kind"`
	Labels     []string  `json:"labels"`
	Values     []float64 `json:"values"`
	Normalized []float64 `json:"normalized"`
}

// Empty reports whether the analysis lacked the section this chart needs.
func (s Series) Empty() bool { return len(s.Values) == 0 }

// ChartSeries builds the series for one chart kind. When the analysis lacks
// the needed sub-section the result is an empty series, never a panic.
func ChartSeries(res *analyzer.Result, kind ChartKind) Series {
	s := Series{Kind: kind}
	if res.Empty() {
		return s
	}

	switch kind {
	case ChartLength:
		for _, cat := range []features.LengthCategory{features.LengthShort, features.LengthMedium, features.LengthLong} {
			avg, ok := res.LengthPatterns.AvgEngagement[cat]
			if !ok {
				continue
			}
			s.Labels = append(s.Labels, string(cat))
			s.Values = append(s.Values, avg)
		}
	case ChartTone:
		tones := make([]string, 0, len(res.TonePatterns.AvgEngagement))
		for tone := range res.TonePatterns.AvgEngagement {
			tones = append(tones, string(tone))
		}
		sort.Strings(tones)
		for _, tone := range tones {
			s.Labels = append(s.Labels, tone)
			s.Values = append(s.Values, res.TonePatterns.AvgEngagement[features.Tone(tone)])
		}
	case ChartHourly:
		if len(res.TimePatterns.HourlyAvgEngagement) != 24 {
			return s
		}
		for h := 0; h < 24; h++ {
			s.Labels = append(s.Labels, fmt.Sprintf("%02d:00", h))
			s.Values = append(s.Values, res.TimePatterns.HourlyAvgEngagement[h])
		}
	case ChartWeekday:
		if len(res.TimePatterns.DailyAvgEngagement) != 7 {
			return s
		}
		for d := 0; d < 7; d++ {
			s.Labels = append(s.Labels, time.Weekday(d).String())
			s.Values = append(s.Values, res.TimePatterns.DailyAvgEngagement[d])
		}
	case ChartCorrelation:
		names := make([]string, 0, len(res.Correlation.ByFeature))
		for name := range res.Correlation.ByFeature {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s.Labels = append(s.Labels, name)
			s.Values = append(s.Values, res.Correlation.ByFeature[name])
		}
	}

	if len(s.Values) > 0 {
		s.Normalized = stats.Normalize(s.Values, stats.MinMax)
	}
	return s
}
