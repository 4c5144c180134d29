// Package experiment creates and tracks A/B tests over content variants and
// judges them with a two-proportion z-test. Variant 0 is always the control.
package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/stats"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/store"
)

// ErrTooFewVariants rejects experiments without a control and at least one
// treatment.
var ErrTooFewVariants = errors.New("experiment needs at least 2 variants")

// DefaultDurationDays applies when the caller does not pick a duration.
const DefaultDurationDays = 7

// Outcome is one batch of observed results for a variant.
type Outcome struct {
	Impressions int
	Successes   int
	Engagement  float64
}

// Manager runs the experiment lifecycle on top of the persistence
// collaborator.
type Manager struct {
	store store.Store
	log   *logrus.Logger
}

func NewManager(s store.Store, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Manager{store: s, log: log}
}

// CreateTest registers a new experiment. Variants keep their given order;
// index 0 is the control.
func (m *Manager) CreateTest(ctx context.Context, variants []string, durationDays int) (*store.Experiment, error) {
	if len(variants) < 2 {
		return nil, ErrTooFewVariants
	}
	for i, v := range variants {
		if v == "" {
			return nil, fmt.Errorf("variant %d is empty", i)
		}
	}
	if durationDays <= 0 {
		durationDays = DefaultDurationDays
	}

	exp := &store.Experiment{
		ID:           uuid.NewString(),
		Variants:     variants,
		DurationDays: durationDays,
	}
	if err := m.store.CreateExperiment(ctx, exp); err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{"id": exp.ID, "variants": len(variants)}).Info("experiment created")
	return exp, nil
}

// RecordOutcome appends one batch of metrics for a variant. Recording
// against a terminal experiment or an out-of-range variant is rejected.
func (m *Manager) RecordOutcome(ctx context.Context, id string, variant int, out Outcome) error {
	exp, err := m.store.GetExperiment(ctx, id)
	if err != nil {
		return err
	}
	if exp.Status.Terminal() {
		return fmt.Errorf("experiment %s is %s", id, exp.Status)
	}
	if variant < 0 || variant >= len(exp.Variants) {
		return fmt.Errorf("invalid variant index %d (experiment has %d variants)", variant, len(exp.Variants))
	}
	if out.Impressions < 0 || out.Successes < 0 || out.Successes > out.Impressions {
		return fmt.Errorf("invalid outcome: %d successes over %d impressions", out.Successes, out.Impressions)
	}
	return m.store.RecordOutcome(ctx, id, variant, out.Impressions, out.Successes, out.Engagement)
}

// Complete marks an experiment finished, recording the analyzed winner when
// one exists.
func (m *Manager) Complete(ctx context.Context, id string) (*Report, error) {
	report, err := m.Analyze(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.store.UpdateExperimentStatus(ctx, id, store.StatusCompleted, report.Winner); err != nil {
		return nil, err
	}
	report.Status = store.StatusCompleted
	return report, nil
}

// Cancel terminates an experiment without declaring a winner.
func (m *Manager) Cancel(ctx context.Context, id string) error {
	return m.store.UpdateExperimentStatus(ctx, id, store.StatusCancelled, nil)
}

// Analyze computes the significance report for an experiment. An unknown id
// surfaces store.ErrNotFound, the engine's not-found sentinel.
func (m *Manager) Analyze(ctx context.Context, id string) (*Report, error) {
	exp, err := m.store.GetExperiment(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics, err := m.store.GetVariantMetrics(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildReport(exp, metrics), nil
}

// buildReport is the pure analysis half, shared with tests.
func buildReport(exp *store.Experiment, metrics []store.VariantMetrics) *Report {
	byVariant := make(map[int]store.VariantMetrics, len(metrics))
	for _, m := range metrics {
		byVariant[m.Variant] = m
	}

	report := &Report{
		ID:           exp.ID,
		Status:       exp.Status,
		DurationDays: exp.DurationDays,
		Winner:       exp.WinnerVariant,
	}

	for i, content := range exp.Variants {
		vm := byVariant[i] // zero-valued when no outcomes yet
		lower, upper := stats.WilsonInterval(vm.Successes, vm.Impressions)
		report.Variants = append(report.Variants, VariantReport{
			Index:          i,
			Content:        content,
			Impressions:    vm.Impressions,
			Successes:      vm.Successes,
			SuccessRate:    vm.SuccessRate(),
			EngagementRate: vm.EngagementRate(),
			CILower:        lower,
			CIUpper:        upper,
		})
	}

	control := byVariant[0]
	bestRate := control.SuccessRate()
	winner := -1
	for i := 1; i < len(exp.Variants); i++ {
		treatment := byVariant[i]
		zt := stats.TwoProportionZTest(treatment.Successes, treatment.Impressions, control.Successes, control.Impressions)
		cmp := Comparison{
			Variant:             i,
			Z:                   zt.Z,
			Significant:         zt.Significant,
			Confidence:          zt.Confidence * 100,
			SuccessRateDelta:    treatment.SuccessRate() - control.SuccessRate(),
			EngagementRateDelta: treatment.EngagementRate() - control.EngagementRate(),
		}
		report.Comparisons = append(report.Comparisons, cmp)

		// The winner must beat the control significantly; ties keep the
		// control and declare nothing.
		if cmp.Significant && treatment.SuccessRate() > bestRate {
			bestRate = treatment.SuccessRate()
			winner = i
		}
	}
	if winner >= 0 && report.Winner == nil {
		report.Winner = &winner
	}
	return report
}
