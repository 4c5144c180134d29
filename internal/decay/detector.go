// Package decay watches a mined pattern's performance history for
// degradation and recommends whether the pattern should be retired.
package decay

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/stats"
)

// MinObservations is the floor below which no trend is trusted.
const MinObservations = 3

// Config carries the detection tunables.
type Config struct {
	// SlopeRatio is the per-step decline, as a fraction of the series mean,
	// beyond which a slope counts as truly negative.
	SlopeRatio float64
	// ConfidenceBar is the decay-score threshold for declaring decay.
	ConfidenceBar float64
}

func DefaultConfig() Config {
	return Config{SlopeRatio: 0.01, ConfidenceBar: 0.7}
}

// ObservationSource is the read contract against the persistence
// collaborator for reconstructing a pattern's history.
type ObservationSource interface {
	ListObservations(ctx context.Context, patternType, patternDetail string, since time.Time) ([]models.PerformanceObservation, error)
}

// Report is the decay verdict for one pattern.
type Report struct {
	PatternType   string         `json:"pattern_type"`
	PatternDetail string         `json:"pattern_detail"`
	Observations  int            `json:"observations"`
	DecayDetected bool           `json:"decay_detected"`
	Confidence    float64        `json:"confidence"` // 0-1
	Trend         stats.TrendFit `json:"trend"`
	// DecayScore combines the decline magnitude with trend consistency.
	DecayScore     float64 `json:"decay_score"`
	Recommendation string  `json:"recommendation"`
}

// Detector evaluates pattern performance histories.
type Detector struct {
	cfg    Config
	source ObservationSource
	log    *logrus.Logger
	now    func() time.Time
}

func New(cfg Config, source ObservationSource, log *logrus.Logger) *Detector {
	if cfg.SlopeRatio <= 0 {
		cfg.SlopeRatio = DefaultConfig().SlopeRatio
	}
	if cfg.ConfidenceBar <= 0 {
		cfg.ConfidenceBar = DefaultConfig().ConfidenceBar
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Detector{cfg: cfg, source: source, log: log, now: time.Now}
}

// Detect loads the pattern's history inside the window and evaluates it.
func (d *Detector) Detect(ctx context.Context, patternType, patternDetail string, windowDays int) (Report, error) {
	since := d.now().AddDate(0, 0, -windowDays)
	obs, err := d.source.ListObservations(ctx, patternType, patternDetail, since)
	if err != nil {
		return Report{}, err
	}
	report := d.Evaluate(obs)
	report.PatternType = patternType
	report.PatternDetail = patternDetail
	return report, nil
}

// Evaluate is the pure detection pass over a chronologically ordered series.
// Fewer than MinObservations points yields no detection at confidence 0.
func (d *Detector) Evaluate(obs []models.PerformanceObservation) Report {
	report := Report{Observations: len(obs), Recommendation: RecommendKeep}
	if len(obs) < MinObservations {
		report.Recommendation = RecommendInsufficientData
		return report
	}

	sorted := make([]models.PerformanceObservation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ObservedAt.Before(sorted[j].ObservedAt) })

	values := make([]float64, len(sorted))
	for i, o := range sorted {
		values[i] = o.Value
	}

	fit := stats.LinearFit(values)
	report.Trend = fit

	mean := stats.Mean(values)
	if fit.Slope < 0 && math.Abs(mean) > 1e-12 {
		// Total decline over the window, as a fraction of typical value.
		declined := math.Min(1, -fit.Slope*float64(len(values)-1)/math.Abs(mean))
		report.DecayScore = declined * fit.Consistency
	}
	report.Confidence = report.DecayScore

	declining := fit.Slope < -d.cfg.SlopeRatio*math.Abs(mean)
	report.DecayDetected = declining && report.DecayScore > d.cfg.ConfidenceBar

	switch {
	case report.DecayDetected:
		report.Recommendation = RecommendRetire
	case declining:
		report.Recommendation = RecommendMonitor
	}

	d.log.WithFields(logrus.Fields{
		"slope":    fit.Slope,
		"score":    report.DecayScore,
		"detected": report.DecayDetected,
		"points":   len(values),
	}).Debug("decay evaluated")
	return report
}

// Recommendation values.
const (
	RecommendKeep             = "keep"
	RecommendMonitor          = "monitor"
	RecommendRetire           = "retire"
	RecommendInsufficientData = "insufficient_data"
)
