package store

import (
	"context"
	"time"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
)

// Store is the persistence collaborator contract: repost snapshots in,
// experiment state and pattern-performance history durably kept.
type Store interface {
	// Repost snapshot operations
	InsertRepost(ctx context.Context, rec models.RepostRecord) (int64, error)
	ListReposts(ctx context.Context, source string, limit int) ([]models.RepostRecord, error)

	// Experiment operations
	CreateExperiment(ctx context.Context, exp *Experiment) error
	GetExperiment(ctx context.Context, id string) (*Experiment, error)
	ListExperiments(ctx context.Context) ([]*Experiment, error)
	UpdateExperimentStatus(ctx context.Context, id string, status ExperimentStatus, winner *int) error
	RecordOutcome(ctx context.Context, id string, variant int, impressions, successes int, engagement float64) error
	GetVariantMetrics(ctx context.Context, id string) ([]VariantMetrics, error)

	// Pattern performance history
	AppendObservation(ctx context.Context, obs models.PerformanceObservation) error
	ListObservations(ctx context.Context, patternType, patternDetail string, since time.Time) ([]models.PerformanceObservation, error)

	// Lifecycle
	Close() error
}
