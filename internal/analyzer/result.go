package analyzer

import (
	"time"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
)

// Result is the full output of one analysis run. All sub-sections are plain
// data intended for serialization by the presentation side. A run over zero
// records produces the zero value, for which Empty reports true; dependent
// components rely on that instead of an error.
type Result struct {
	Summary         Summary               `json:"summary"`
	LengthPatterns  LengthPatterns        `json:"length_patterns"`
	TonePatterns    TonePatterns          `json:"tone_patterns"`
	FormatPatterns  FormatPatterns        `json:"format_patterns"`
	Correlation     EngagementCorrelation `json:"engagement_correlation"`
	TimePatterns    TimePatterns          `json:"time_patterns"`
	ContentPatterns ContentPatterns       `json:"content_patterns"`
	Recommendations []Recommendation      `json:"recommendations"`
}

// Empty reports whether the result came from an empty record set.
func (r *Result) Empty() bool {
	return r == nil || r.Summary.TotalReposts == 0
}

// Summary holds corpus-level totals and averages.
type Summary struct {
	TotalReposts    int           `json:"total_reposts"`
	TotalEngagement float64       `json:"total_engagement"`
	AvgEngagement   float64       `json:"avg_engagement_per_repost"`
	AvgLength       float64       `json:"avg_length"`
	TopSources      []SourceCount `json:"top_sources"`
	DateRange       DateRange     `json:"date_range"`
}

type SourceCount struct {
	Handle string `json:"handle"`
	Count  int    `json:"count"`
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// LengthPatterns describes how text length relates to engagement.
type LengthPatterns struct {
	Distribution  map[features.LengthCategory]int     `json:"distribution"`
	AvgEngagement map[features.LengthCategory]float64 `json:"avg_engagement"`
	// Correlation is Pearson r between raw character count and engagement.
	Correlation  float64     `json:"length_engagement_correlation"`
	OptimalRange LengthRange `json:"optimal_length_range"`
}

type LengthRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether a character count falls inside the range.
func (lr LengthRange) Contains(n int) bool {
	return n >= lr.Min && n <= lr.Max
}

// TonePatterns describes per-tone engagement and effectiveness.
type TonePatterns struct {
	Distribution  map[features.Tone]int     `json:"distribution"`
	AvgEngagement map[features.Tone]float64 `json:"avg_engagement"`
	// Effectiveness is each tone's average engagement as a ratio of the
	// global average; 1.0 means a tone performs exactly at corpus average.
	Effectiveness map[features.Tone]float64 `json:"tone_effectiveness"`
	TopTones      []ToneRank                `json:"top_effective_tones"`
}

type ToneRank struct {
	Tone          features.Tone `json:"tone"`
	Effectiveness float64       `json:"effectiveness"`
	Example       string        `json:"example"`
}

// FormatPatterns covers the countable format features.
type FormatPatterns struct {
	Hashtags FormatPattern `json:"hashtags"`
	Emojis   FormatPattern `json:"emojis"`
	URLs     FormatPattern `json:"urls"`
	Mentions FormatPattern `json:"mentions"`
}

// FormatPattern is the histogram of one count feature against engagement.
type FormatPattern struct {
	Distribution  map[int]int     `json:"distribution"`
	AvgEngagement map[int]float64 `json:"avg_engagement"`
	// OptimalCount is the count value with the highest average engagement;
	// ties resolve to the lower count.
	OptimalCount int `json:"optimal_count"`
}

// EngagementCorrelation relates numeric features to engagement.
type EngagementCorrelation struct {
	ByFeature map[string]float64 `json:"correlations"`
	// Strongest names the feature with the largest |r|.
	Strongest  string               `json:"strongest_correlation"`
	Predictors map[string]Predictor `json:"engagement_predictors"`
}

// Predictor partitions records into has-feature versus not and compares the
// two groups' average engagement.
type Predictor struct {
	AvgWith    float64 `json:"avg_engagement_with"`
	AvgWithout float64 `json:"avg_engagement_without"`
	Impact     float64 `json:"impact"`
	Frequency  float64 `json:"frequency"`
}

// TimePatterns buckets engagement by posting hour and weekday.
type TimePatterns struct {
	HourlyDistribution  []int     `json:"hourly_distribution"`   // 24 buckets
	HourlyAvgEngagement []float64 `json:"hourly_avg_engagement"` // 24 buckets
	DailyDistribution   []int     `json:"daily_distribution"`    // 7 buckets, Sunday=0
	DailyAvgEngagement  []float64 `json:"daily_avg_engagement"`  // 7 buckets
	BestHours           []int     `json:"best_hours"`
	BestDays            []int     `json:"best_days"`
}

// ContentPatterns covers vocabulary and content-type statistics.
type ContentPatterns struct {
	TopWords          []WordCount               `json:"top_words"`
	TopPhrases        []WordCount               `json:"top_phrases"`
	TypeDistribution  map[features.Tone]int     `json:"content_type_distribution"`
	TypeAvgEngagement map[features.Tone]float64 `json:"content_type_avg_engagement"`
}

type WordCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Recommendation is one rule-derived piece of content guidance.
type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high, medium, low
}
