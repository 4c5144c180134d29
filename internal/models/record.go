package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// EngagementMode selects the canonical engagement scalar for one analysis run.
// The two definitions are never mixed within a single run.
type EngagementMode string

const (
	// EngagementSum counts retweets + likes + replies + quotes.
	EngagementSum EngagementMode = "sum"
	// EngagementReposts counts retweets only, for repost-volume summaries.
	EngagementReposts EngagementMode = "reposts"
)

// Engagement holds the interaction counts observed for one repost.
type Engagement struct {
	Retweets Count `json:"retweets"`
	Likes    Count `json:"likes"`
	Replies  Count `json:"replies"`
	Quotes   Count `json:"quotes"`
}

// Score returns the scalar engagement value under the given mode.
func (e Engagement) Score(mode EngagementMode) float64 {
	if mode == EngagementReposts {
		return float64(e.Retweets)
	}
	return float64(e.Retweets + e.Likes + e.Replies + e.Quotes)
}

// Count is a non-negative integer that tolerates numeric strings and floats
// in its JSON form. Upstream exports are inconsistent about number types;
// records with values that cannot be coerced are kept with a zero count
// rather than failing the whole import.
type Count int64

func (c *Count) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*c = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			n = 0
		}
		*c = Count(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			f = 0
		}
		*c = Count(f)
		return nil
	}
	*c = 0
	return nil
}

// RepostRecord is one immutable observation of reposted content. Records are
// created by the ingestion side and consumed read-only by the engine.
type RepostRecord struct {
	ID           int64      `json:"id,omitempty"`
	Text         string     `json:"text"`
	SourceHandle string     `json:"source_handle"`
	Engagement   Engagement `json:"engagement"`
	Timestamp    time.Time  `json:"timestamp"`
}

// UnmarshalJSON accepts both RFC 3339 strings and unix-second numbers for
// the timestamp field. Records with unparseable timestamps keep a zero time
// and are excluded from time-bucket aggregations by the analyzer.
func (r *RepostRecord) UnmarshalJSON(data []byte) error {
	type alias RepostRecord
	aux := struct {
		Timestamp json.RawMessage `json:"timestamp"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Timestamp = parseTimestamp(aux.Timestamp)
	return nil
}

func parseTimestamp(raw json.RawMessage) time.Time {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0).UTC()
	}
	return time.Time{}
}

// PerformanceObservation is one append-only sample of a mined pattern's
// observed performance, consumed by the decay detector.
type PerformanceObservation struct {
	ID            int64     `json:"id,omitempty"`
	PatternType   string    `json:"pattern_type"`
	PatternDetail string    `json:"pattern_detail"`
	Value         float64   `json:"value"`
	ObservedAt    time.Time `json:"observed_at"`
}
