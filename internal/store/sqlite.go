package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
)

// ErrNotFound is the sentinel for unknown experiment ids; callers poll by id
// and treat it as an expected outcome, not a failure.
var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS reposts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    source_handle TEXT NOT NULL,
    retweets INTEGER NOT NULL DEFAULT 0,
    likes INTEGER NOT NULL DEFAULT 0,
    replies INTEGER NOT NULL DEFAULT 0,
    quotes INTEGER NOT NULL DEFAULT 0,
    posted_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reposts_source ON reposts(source_handle);
CREATE INDEX IF NOT EXISTS idx_reposts_posted ON reposts(posted_at);

CREATE TABLE IF NOT EXISTS experiments (
    id TEXT PRIMARY KEY,
    variants TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    duration_days INTEGER NOT NULL DEFAULT 0,
    winner_variant INTEGER,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_experiments_status ON experiments(status);

CREATE TABLE IF NOT EXISTS outcomes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    experiment_id TEXT NOT NULL,
    variant INTEGER NOT NULL,
    impressions INTEGER NOT NULL DEFAULT 0,
    successes INTEGER NOT NULL DEFAULT 0,
    engagement REAL NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    FOREIGN KEY (experiment_id) REFERENCES experiments(id)
);

CREATE INDEX IF NOT EXISTS idx_outcomes_experiment ON outcomes(experiment_id, variant);

CREATE TABLE IF NOT EXISTS observations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pattern_type TEXT NOT NULL,
    pattern_detail TEXT NOT NULL,
    value REAL NOT NULL,
    observed_at INTEGER NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_observations_pattern ON observations(pattern_type, pattern_detail, observed_at);
`

func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertRepost(ctx context.Context, rec models.RepostRecord) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO reposts (text, source_handle, retweets, likes, replies, quotes, posted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Text, rec.SourceHandle,
		int64(rec.Engagement.Retweets), int64(rec.Engagement.Likes),
		int64(rec.Engagement.Replies), int64(rec.Engagement.Quotes),
		rec.Timestamp.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert repost: %w", err)
	}
	return result.LastInsertId()
}

func (s *SQLiteStore) ListReposts(ctx context.Context, source string, limit int) ([]models.RepostRecord, error) {
	query := `SELECT id, text, source_handle, retweets, likes, replies, quotes, posted_at
	          FROM reposts`
	args := []any{}
	if source != "" {
		query += ` WHERE source_handle = ?`
		args = append(args, source)
	}
	query += ` ORDER BY posted_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reposts: %w", err)
	}
	defer rows.Close()

	var records []models.RepostRecord
	for rows.Next() {
		var rec models.RepostRecord
		var postedAt int64
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.SourceHandle,
			&rec.Engagement.Retweets, &rec.Engagement.Likes,
			&rec.Engagement.Replies, &rec.Engagement.Quotes, &postedAt); err != nil {
			return nil, fmt.Errorf("failed to scan repost: %w", err)
		}
		rec.Timestamp = time.Unix(postedAt, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) CreateExperiment(ctx context.Context, exp *Experiment) error {
	variantsJSON, err := json.Marshal(exp.Variants)
	if err != nil {
		return fmt.Errorf("failed to marshal variants: %w", err)
	}

	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO experiments (id, variants, status, duration_days, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		exp.ID, string(variantsJSON), string(StatusActive), exp.DurationDays, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert experiment: %w", err)
	}

	exp.Status = StatusActive
	exp.CreatedAt = time.Unix(now, 0)
	exp.UpdatedAt = time.Unix(now, 0)
	return nil
}

func (s *SQLiteStore) GetExperiment(ctx context.Context, id string) (*Experiment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, variants, status, duration_days, winner_variant, created_at, updated_at
		 FROM experiments WHERE id = ?`, id)
	return scanExperiment(row)
}

func (s *SQLiteStore) ListExperiments(ctx context.Context) ([]*Experiment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, variants, status, duration_days, winner_variant, created_at, updated_at
		 FROM experiments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var exps []*Experiment
	for rows.Next() {
		exp, err := scanExperiment(rows)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}
	return exps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExperiment(row rowScanner) (*Experiment, error) {
	var exp Experiment
	var variantsJSON string
	var winner sql.NullInt64
	var createdAt, updatedAt int64

	err := row.Scan(&exp.ID, &variantsJSON, &exp.Status, &exp.DurationDays, &winner, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan experiment: %w", err)
	}

	if err := json.Unmarshal([]byte(variantsJSON), &exp.Variants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal variants: %w", err)
	}
	if winner.Valid {
		w := int(winner.Int64)
		exp.WinnerVariant = &w
	}
	exp.CreatedAt = time.Unix(createdAt, 0)
	exp.UpdatedAt = time.Unix(updatedAt, 0)
	return &exp, nil
}

func (s *SQLiteStore) UpdateExperimentStatus(ctx context.Context, id string, status ExperimentStatus, winner *int) error {
	now := time.Now().Unix()

	var result sql.Result
	var err error
	if winner != nil {
		result, err = s.db.ExecContext(ctx,
			`UPDATE experiments SET status = ?, winner_variant = ?, updated_at = ? WHERE id = ?`,
			string(status), *winner, now, id)
	} else {
		result, err = s.db.ExecContext(ctx,
			`UPDATE experiments SET status = ?, updated_at = ? WHERE id = ?`,
			string(status), now, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update experiment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) RecordOutcome(ctx context.Context, id string, variant int, impressions, successes int, engagement float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (experiment_id, variant, impressions, successes, engagement, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, variant, impressions, successes, engagement, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetVariantMetrics(ctx context.Context, id string) ([]VariantMetrics, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			variant,
			COALESCE(SUM(impressions), 0),
			COALESCE(SUM(successes), 0),
			COALESCE(SUM(engagement), 0)
		FROM outcomes
		WHERE experiment_id = ?
		GROUP BY variant
		ORDER BY variant
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get variant metrics: %w", err)
	}
	defer rows.Close()

	var metrics []VariantMetrics
	for rows.Next() {
		var m VariantMetrics
		if err := rows.Scan(&m.Variant, &m.Impressions, &m.Successes, &m.EngagementSum); err != nil {
			return nil, fmt.Errorf("failed to scan metrics: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

func (s *SQLiteStore) AppendObservation(ctx context.Context, obs models.PerformanceObservation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO observations (pattern_type, pattern_detail, value, observed_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		obs.PatternType, obs.PatternDetail, obs.Value, obs.ObservedAt.Unix(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to append observation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListObservations(ctx context.Context, patternType, patternDetail string, since time.Time) ([]models.PerformanceObservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pattern_type, pattern_detail, value, observed_at
		 FROM observations
		 WHERE pattern_type = ? AND pattern_detail = ? AND observed_at >= ?
		 ORDER BY observed_at ASC`,
		patternType, patternDetail, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	defer rows.Close()

	var obs []models.PerformanceObservation
	for rows.Next() {
		var o models.PerformanceObservation
		var observedAt int64
		if err := rows.Scan(&o.ID, &o.PatternType, &o.PatternDetail, &o.Value, &observedAt); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		o.ObservedAt = time.Unix(observedAt, 0).UTC()
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

// DB exposes the underlying handle for health checks.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}
