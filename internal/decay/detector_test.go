package decay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
)

func series(start time.Time, values ...float64) []models.PerformanceObservation {
	obs := make([]models.PerformanceObservation, len(values))
	for i, v := range values {
		obs[i] = models.PerformanceObservation{
			PatternType:   "tone",
			PatternDetail: "question",
			Value:         v,
			ObservedAt:    start.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return obs
}

func TestEvaluate_SteadyDeclineDetected(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	// 15 points dropping 100 -> 30 in steps of 5.
	values := make([]float64, 15)
	for i := range values {
		values[i] = 100 - 5*float64(i)
	}

	d := New(DefaultConfig(), nil, nil)
	report := d.Evaluate(series(start, values...))

	assert.True(t, report.DecayDetected)
	assert.Greater(t, report.Confidence, 0.7)
	assert.InDelta(t, -5.0, report.Trend.Slope, 1e-9)
	assert.InDelta(t, 1.0, report.Trend.Consistency, 1e-9)
	assert.Equal(t, RecommendRetire, report.Recommendation)
}

func TestEvaluate_ConstantSeriesNotDecaying(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	d := New(DefaultConfig(), nil, nil)
	report := d.Evaluate(series(start, 50, 50, 50, 50, 50))

	assert.False(t, report.DecayDetected)
	assert.Equal(t, 0.0, report.DecayScore)
	assert.Equal(t, RecommendKeep, report.Recommendation)
}

func TestEvaluate_ImprovingSeriesNotDecaying(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	d := New(DefaultConfig(), nil, nil)
	report := d.Evaluate(series(start, 10, 20, 30, 40))

	assert.False(t, report.DecayDetected)
	assert.Equal(t, RecommendKeep, report.Recommendation)
}

func TestEvaluate_ShallowDeclineMonitored(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	// Slope -1 against a mean of 98: clearly negative but the total decline
	// is far below the confidence bar.
	d := New(DefaultConfig(), nil, nil)
	report := d.Evaluate(series(start, 100, 99, 98, 97, 96))

	assert.False(t, report.DecayDetected)
	assert.Less(t, report.DecayScore, 0.7)
	assert.Equal(t, RecommendMonitor, report.Recommendation)
}

func TestEvaluate_TooFewObservations(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	d := New(DefaultConfig(), nil, nil)
	report := d.Evaluate(series(start, 100, 10))

	assert.False(t, report.DecayDetected)
	assert.Equal(t, 0.0, report.Confidence)
	assert.Equal(t, RecommendInsufficientData, report.Recommendation)
}

func TestEvaluate_SortsOutOfOrderObservations(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	obs := series(start, 100, 80, 60, 40, 20)
	// Shuffle without changing which value belongs to which timestamp.
	obs[0], obs[3] = obs[3], obs[0]
	obs[1], obs[4] = obs[4], obs[1]

	d := New(DefaultConfig(), nil, nil)
	report := d.Evaluate(obs)
	assert.True(t, report.DecayDetected)
	assert.InDelta(t, -20.0, report.Trend.Slope, 1e-9)
}

type stubSource struct {
	obs   []models.PerformanceObservation
	since time.Time
	typ   string
}

func (s *stubSource) ListObservations(_ context.Context, patternType, _ string, since time.Time) ([]models.PerformanceObservation, error) {
	s.typ = patternType
	s.since = since
	return s.obs, nil
}

func TestDetect_WindowsAndLabelsReport(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	src := &stubSource{obs: series(start, 100, 60, 20)}

	d := New(DefaultConfig(), src, nil)
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	report, err := d.Detect(context.Background(), "tone", "question", 30)
	require.NoError(t, err)

	assert.Equal(t, "tone", report.PatternType)
	assert.Equal(t, "question", report.PatternDetail)
	assert.Equal(t, "tone", src.typ)
	assert.Equal(t, fixed.AddDate(0, 0, -30), src.since)
	assert.True(t, report.DecayDetected)
}

func TestNew_BackfillsZeroConfig(t *testing.T) {
	d := New(Config{}, nil, nil)
	assert.Equal(t, DefaultConfig(), d.cfg)
}
