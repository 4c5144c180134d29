package experiment

import "github.com/jairodriguez/Xelite-repost-engine-sub002/internal/store"

// Report is the significance analysis for one experiment, shaped for
// serialization by the presentation side.
type Report struct {
	ID           string                 `json:"id"`
	Status       store.ExperimentStatus `json:"status"`
	DurationDays int                    `json:"duration_days"`
	Variants     []VariantReport        `json:"variants"`
	// Comparisons holds each treatment's z-test against the control.
	Comparisons []Comparison `json:"comparisons"`
	// Winner is the winning variant index, nil while undecided.
	Winner *int `json:"winner"`
}

// VariantReport is one variant's accumulated metrics with a 95% Wilson
// interval around its success rate.
type VariantReport struct {
	Index          int     `json:"index"`
	Content        string  `json:"content"`
	Impressions    int     `json:"impressions"`
	Successes      int     `json:"successes"`
	SuccessRate    float64 `json:"success_rate"`
	EngagementRate float64 `json:"engagement_rate"`
	CILower        float64 `json:"ci_lower"`
	CIUpper        float64 `json:"ci_upper"`
}

// Comparison is one treatment-versus-control z-test outcome.
type Comparison struct {
	Variant             int     `json:"variant"`
	Z                   float64 `json:"z"`
	Significant         bool    `json:"significant"`
	Confidence          float64 `json:"confidence"` // 0-100
	SuccessRateDelta    float64 `json:"success_rate_delta"`
	EngagementRateDelta float64 `json:"engagement_rate_delta"`
}
