// Package analyzer aggregates extracted repost features into summary
// statistics, per-category engagement averages, correlations, and ranked
// recommendations. Analysis is a pure computation over an in-memory record
// snapshot; callers may run analyses concurrently as long as each call gets
// its own snapshot.
package analyzer

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
)

// Config carries the tunables an Analyzer is constructed with.
type Config struct {
	// TopN bounds ranked lists (top tones, best hours, top sources).
	TopN int
	// CacheEnabled turns on memoization keyed by (source, limit, mode).
	CacheEnabled bool
}

// DefaultConfig mirrors the config package defaults for direct library use.
func DefaultConfig() Config {
	return Config{TopN: 3, CacheEnabled: true}
}

// Options selects and scopes one analysis run.
type Options struct {
	// Source filters records to one source handle; empty means all.
	Source string
	// Limit caps the number of records analyzed; 0 means no cap.
	Limit int
	// Mode picks the canonical engagement scalar for the whole run.
	Mode models.EngagementMode
}

// Analyzer mines patterns from repost record snapshots.
type Analyzer struct {
	cfg   Config
	log   *logrus.Logger
	cache *resultCache
}

// New constructs an Analyzer. A nil logger disables logging.
func New(cfg Config, log *logrus.Logger) *Analyzer {
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Analyzer{cfg: cfg, log: log, cache: newResultCache()}
}

// Analyze runs the full pattern analysis over a record snapshot. An empty
// (or fully filtered-out) snapshot yields the zero Result, never an error.
// Results are memoized when caching is enabled; see Invalidate.
func (a *Analyzer) Analyze(records []models.RepostRecord, opts Options) *Result {
	if opts.Mode == "" {
		opts.Mode = models.EngagementSum
	}

	if a.cfg.CacheEnabled {
		if cached, ok := a.cache.get(opts); ok {
			a.log.WithFields(logrus.Fields{"source": opts.Source, "limit": opts.Limit}).Debug("analysis cache hit")
			return cached
		}
	}

	start := time.Now()
	scoped := scope(records, opts)
	result := a.compute(scoped, opts.Mode)

	a.log.WithFields(logrus.Fields{
		"source":  opts.Source,
		"records": len(scoped),
		"elapsed": time.Since(start),
	}).Debug("analysis complete")

	if a.cfg.CacheEnabled {
		a.cache.put(opts, result)
	}
	return result
}

// Invalidate drops cached results for one source handle, or every entry when
// source is empty. The ingestion side calls this after writing new records.
func (a *Analyzer) Invalidate(source string) {
	a.cache.invalidate(source)
}

func scope(records []models.RepostRecord, opts Options) []models.RepostRecord {
	out := records
	if opts.Source != "" {
		out = make([]models.RepostRecord, 0, len(records))
		for _, r := range records {
			if r.SourceHandle == opts.Source {
				out = append(out, r)
			}
		}
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// sample pairs one record with its derived features and engagement scalar.
type sample struct {
	rec   models.RepostRecord
	fs    features.FeatureSet
	score float64
}

func (a *Analyzer) compute(records []models.RepostRecord, mode models.EngagementMode) *Result {
	if len(records) == 0 {
		return &Result{}
	}

	samples := make([]sample, len(records))
	for i, rec := range records {
		samples[i] = sample{rec: rec, fs: features.Extract(rec), score: rec.Engagement.Score(mode)}
	}

	res := &Result{
		Summary:         a.summarize(samples),
		LengthPatterns:  a.lengthPatterns(samples),
		TonePatterns:    a.tonePatterns(samples),
		FormatPatterns:  a.formatPatterns(samples),
		Correlation:     a.correlate(samples),
		TimePatterns:    a.timePatterns(samples),
		ContentPatterns: a.contentPatterns(samples),
	}
	res.Recommendations = a.recommend(res)
	return res
}

func (a *Analyzer) summarize(samples []sample) Summary {
	s := Summary{TotalReposts: len(samples)}

	bySource := make(map[string]int)
	totalLen := 0
	for _, sm := range samples {
		s.TotalEngagement += sm.score
		totalLen += sm.fs.Length
		bySource[sm.rec.SourceHandle]++

		ts := sm.rec.Timestamp
		if ts.IsZero() {
			continue
		}
		if s.DateRange.From.IsZero() || ts.Before(s.DateRange.From) {
			s.DateRange.From = ts
		}
		if ts.After(s.DateRange.To) {
			s.DateRange.To = ts
		}
	}
	s.AvgEngagement = s.TotalEngagement / float64(len(samples))
	s.AvgLength = float64(totalLen) / float64(len(samples))

	for handle, count := range bySource {
		s.TopSources = append(s.TopSources, SourceCount{Handle: handle, Count: count})
	}
	sort.Slice(s.TopSources, func(i, j int) bool {
		if s.TopSources[i].Count != s.TopSources[j].Count {
			return s.TopSources[i].Count > s.TopSources[j].Count
		}
		return s.TopSources[i].Handle < s.TopSources[j].Handle
	})
	if len(s.TopSources) > a.cfg.TopN {
		s.TopSources = s.TopSources[:a.cfg.TopN]
	}
	return s
}
