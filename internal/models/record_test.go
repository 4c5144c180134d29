package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagement_Score(t *testing.T) {
	e := Engagement{Retweets: 5, Likes: 10, Replies: 3, Quotes: 2}
	assert.Equal(t, 20.0, e.Score(EngagementSum))
	assert.Equal(t, 5.0, e.Score(EngagementReposts))
}

func TestCount_CoercesStrings(t *testing.T) {
	var e Engagement
	data := []byte(`{"retweets": "12", "likes": 7, "replies": "3.0", "quotes": null}`)
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, Count(12), e.Retweets)
	assert.Equal(t, Count(7), e.Likes)
	assert.Equal(t, Count(3), e.Replies)
	assert.Equal(t, Count(0), e.Quotes)
}

func TestCount_NegativeAndGarbage(t *testing.T) {
	var e Engagement
	data := []byte(`{"retweets": -4, "likes": "many"}`)
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, Count(0), e.Retweets)
	assert.Equal(t, Count(0), e.Likes)
}

func TestRepostRecord_TimestampFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `"2025-03-01T10:00:00Z"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"sql", `"2025-03-01 10:00:00"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"unix", `1740823200`, time.Unix(1740823200, 0).UTC()},
		{"garbage", `"soon"`, time.Time{}},
		{"missing", `null`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec RepostRecord
			data := []byte(`{"text": "x", "source_handle": "h", "timestamp": ` + tt.raw + `}`)
			require.NoError(t, json.Unmarshal(data, &rec))
			assert.True(t, rec.Timestamp.Equal(tt.want), "got %v want %v", rec.Timestamp, tt.want)
		})
	}
}
