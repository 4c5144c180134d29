package store

import "time"

// ExperimentStatus is the lifecycle state of an A/B experiment.
type ExperimentStatus string

const (
	StatusActive    ExperimentStatus = "active"
	StatusCompleted ExperimentStatus = "completed"
	StatusCancelled ExperimentStatus = "cancelled"
)

// Terminal reports whether the status permits no further outcome recording.
func (s ExperimentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Experiment is one A/B test over content variants. Variant 0 is the
// control.
type Experiment struct {
	ID            string
	Variants      []string // decoded from JSON, >= 2 entries
	Status        ExperimentStatus
	DurationDays  int
	WinnerVariant *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VariantMetrics is the accumulated outcome totals for one variant.
type VariantMetrics struct {
	Variant       int
	Impressions   int
	Successes     int
	EngagementSum float64
}

// SuccessRate is successes over impressions, 0 when nothing was shown.
func (m VariantMetrics) SuccessRate() float64 {
	if m.Impressions == 0 {
		return 0
	}
	return float64(m.Successes) / float64(m.Impressions)
}

// EngagementRate is accumulated engagement per impression.
func (m VariantMetrics) EngagementRate() float64 {
	if m.Impressions == 0 {
		return 0
	}
	return m.EngagementSum / float64(m.Impressions)
}
