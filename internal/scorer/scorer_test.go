package scorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/analyzer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
)

func analyzed(t *testing.T) *analyzer.Result {
	t.Helper()
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	records := []models.RepostRecord{
		{Text: "What is the one thing you'd change?", SourceHandle: "a", Engagement: models.Engagement{Likes: 90}, Timestamp: base},
		{Text: "a plain post about the day #life", SourceHandle: "a", Engagement: models.Engagement{Likes: 30}, Timestamp: base.Add(time.Hour)},
		{Text: "Check out the numbers 🚀", SourceHandle: "b", Engagement: models.Engagement{Likes: 60}, Timestamp: base.Add(2 * time.Hour)},
	}
	res := analyzer.New(analyzer.DefaultConfig(), nil).Analyze(records, analyzer.Options{})
	require.False(t, res.Empty())
	return res
}

func TestScore_EmptyAnalysis(t *testing.T) {
	rep := Score(&analyzer.Result{})
	assert.Equal(t, 0.0, rep.TotalScore)
	assert.Equal(t, "F", rep.Grade)
}

func TestScore_BoundsAndGradeConsistency(t *testing.T) {
	rep := Score(analyzed(t))
	assert.GreaterOrEqual(t, rep.Percentage, 0.0)
	assert.LessOrEqual(t, rep.Percentage, 100.0)
	assert.Equal(t, MaxScore, rep.MaxScore)
	assert.Equal(t, Grade(rep.Percentage), rep.Grade)

	var sum float64
	for _, pts := range rep.Factors {
		sum += pts
	}
	assert.InDelta(t, rep.TotalScore, sum, 1e-9)
}

func TestScore_LengthFactorTieResolvesByCategoryOrder(t *testing.T) {
	res := &analyzer.Result{
		Summary: analyzer.Summary{TotalReposts: 10},
		LengthPatterns: analyzer.LengthPatterns{
			Distribution: map[features.LengthCategory]int{
				features.LengthShort:  2,
				features.LengthMedium: 8,
			},
			AvgEngagement: map[features.LengthCategory]float64{
				features.LengthShort:  5,
				features.LengthMedium: 5,
			},
		},
	}
	// Equal averages: short wins the tie, so the factor is its share (2/10).
	for i := 0; i < 20; i++ {
		rep := Score(res)
		assert.InDelta(t, 5.0, rep.Factors["length"], 1e-9)
	}
}

func TestGrade_BoundaryTable(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A+"}, {93, "A+"}, {92.9, "A"}, {85, "A"}, {84.9, "B+"},
		{75, "B+"}, {74.9, "C"}, {50, "C"}, {49.9, "D"}, {40, "D"},
		{39.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.pct), "pct %v", tt.pct)
	}
}

func TestGrade_Monotonic(t *testing.T) {
	order := map[string]int{"F": 0, "D": 1, "C": 2, "B+": 3, "A": 4, "A+": 5}
	prev := "F"
	for pct := 0.0; pct <= 100; pct += 0.5 {
		g := Grade(pct)
		assert.GreaterOrEqual(t, order[g], order[prev], "grade dropped at %v", pct)
		prev = g
	}
}

func TestChartSeries_AllKinds(t *testing.T) {
	res := analyzed(t)
	for _, kind := range []ChartKind{ChartLength, ChartTone, ChartHourly, ChartWeekday, ChartCorrelation} {
		s := ChartSeries(res, kind)
		assert.False(t, s.Empty(), "kind %s", kind)
		assert.Equal(t, len(s.Labels), len(s.Values))
		assert.Equal(t, len(s.Values), len(s.Normalized))
		for _, v := range s.Normalized {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestChartSeries_EmptyAnalysisDegradesGracefully(t *testing.T) {
	for _, kind := range []ChartKind{ChartLength, ChartTone, ChartHourly, ChartWeekday, ChartCorrelation} {
		s := ChartSeries(&analyzer.Result{}, kind)
		assert.True(t, s.Empty(), "kind %s", kind)
	}
}

func TestChartSeries_UnknownKind(t *testing.T) {
	s := ChartSeries(analyzed(t), ChartKind("nope"))
	assert.True(t, s.Empty())
}
