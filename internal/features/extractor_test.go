package features

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
)

func TestCategorizeLength(t *testing.T) {
	tests := []struct {
		length int
		want   LengthCategory
	}{
		{0, LengthShort},
		{100, LengthShort},
		{101, LengthMedium},
		{200, LengthMedium},
		{201, LengthLong},
		{280, LengthLong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizeLength(tt.length), "length %d", tt.length)
	}
}

func TestBounds(t *testing.T) {
	min, max := LengthShort.Bounds()
	assert.Equal(t, 0, min)
	assert.Equal(t, 100, max)

	min, max = LengthLong.Bounds()
	assert.Equal(t, 201, min)
	assert.Equal(t, 280, max)
}

func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		text string
		want Tone
	}{
		{"What do you think about this?", ToneQuestion},
		{"how I built a product in a weekend", ToneQuestion},
		{"Check out our new release", ToneCallToAction},
		{"Pro tip: ship before you feel ready", ToneTip},
		{"sharing a quick tip for founders", ToneTip},
		{"three tips that saved my launch", ToneTip},
		{"multiple options shipped today", ToneGeneral}, // "tip" inside a word must not match
		{"When I started out, nobody read my posts", ToneStory},
		{"The truth about remote work", ToneFact},
		{"Shipping release 2.0 today", ToneGeneral},
		{"", ToneGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.text), "text %q", tt.text)
	}
}

func TestClassify_QuestionBeatsCTA(t *testing.T) {
	// Question sits first in the priority chain even with a CTA cue present.
	assert.Equal(t, ToneQuestion, Classify("Should you subscribe to this newsletter?"))
}

func TestExtract_Counts(t *testing.T) {
	rec := models.RepostRecord{
		Text: "Check out https://example.com and https://example.org #golang #dev @alice 🚀🔥",
	}
	fs := Extract(rec)
	assert.Equal(t, 2, fs.HashtagCount)
	assert.Equal(t, 2, fs.URLCount)
	assert.Equal(t, 1, fs.MentionCount)
	assert.Equal(t, 2, fs.EmojiCount)
}

func TestExtract_TimeFeatures(t *testing.T) {
	rec := models.RepostRecord{
		Text:      "hello",
		Timestamp: time.Date(2025, 6, 4, 14, 30, 0, 0, time.UTC), // a Wednesday
	}
	fs := Extract(rec)
	assert.Equal(t, 14, fs.Hour)
	assert.Equal(t, 3, fs.Weekday)
}

func TestExtract_NoTimestamp(t *testing.T) {
	fs := Extract(models.RepostRecord{Text: "hello"})
	assert.Equal(t, -1, fs.Hour)
	assert.Equal(t, -1, fs.Weekday)
}

func TestExtract_LengthAndContentType(t *testing.T) {
	fs := Extract(models.RepostRecord{Text: strings.Repeat("a", 150)})
	assert.Equal(t, 150, fs.Length)
	assert.Equal(t, LengthMedium, fs.LengthCategory)
	assert.Equal(t, fs.Tone, fs.ContentType)
}

func TestExtract_Deterministic(t *testing.T) {
	rec := models.RepostRecord{Text: "Pro tip: measure twice #build 🚀"}
	assert.Equal(t, Extract(rec), Extract(rec))
}
