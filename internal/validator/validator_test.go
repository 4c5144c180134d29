package validator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/analyzer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
)

// minimal non-empty analysis with a chosen optimal length range.
func analysisWithRange(min, max int) *analyzer.Result {
	return &analyzer.Result{
		Summary:        analyzer.Summary{TotalReposts: 10},
		LengthPatterns: analyzer.LengthPatterns{OptimalRange: analyzer.LengthRange{Min: min, Max: max}},
	}
}

func TestApply_EmptyAnalysis(t *testing.T) {
	app := New(nil).Apply("hello world", nil, &analyzer.Result{})
	assert.Equal(t, "hello world", app.ModifiedContent)
	assert.Empty(t, app.Applied)
	assert.Equal(t, 0.0, app.Confidence)
}

func TestApply_EmptyContent(t *testing.T) {
	app := New(nil).Apply("", []string{PatternLength}, analysisWithRange(100, 150))
	assert.Equal(t, "", app.ModifiedContent)
	assert.Equal(t, 0.0, app.Confidence)
}

func TestLength_PadsShortContentIntoRange(t *testing.T) {
	app := New(nil).Apply("hello", []string{PatternLength}, analysisWithRange(100, 150))

	n := len(app.ModifiedContent)
	assert.GreaterOrEqual(t, n, 100)
	assert.LessOrEqual(t, n, 150)
	require.Contains(t, app.Applied, PatternLength)
	assert.True(t, app.Applied[PatternLength].Modified)
	assert.NotEmpty(t, app.Modifications)
}

func TestLength_TrimsLongContentIntoRange(t *testing.T) {
	long := strings.Repeat("word ", 60) // 300 chars
	app := New(nil).Apply(long, []string{PatternLength}, analysisWithRange(100, 150))

	n := len(app.ModifiedContent)
	assert.GreaterOrEqual(t, n, 100)
	assert.LessOrEqual(t, n, 150)
}

func TestLength_TrimNeverSplitsRunes(t *testing.T) {
	// 40 four-byte runes with no spaces: the byte ceiling falls mid-rune.
	content := strings.Repeat("🔥", 40)
	app := New(nil).Apply(content, []string{PatternLength}, analysisWithRange(0, 50))

	assert.True(t, utf8.ValidString(app.ModifiedContent))
	assert.LessOrEqual(t, len(app.ModifiedContent), 50)
	assert.True(t, app.Applied[PatternLength].Modified)
}

func TestLength_InRangeUnchanged(t *testing.T) {
	content := strings.Repeat("a", 120)
	app := New(nil).Apply(content, []string{PatternLength}, analysisWithRange(100, 150))

	assert.Equal(t, content, app.ModifiedContent)
	assert.False(t, app.Applied[PatternLength].Modified)
	assert.Equal(t, 100.0, app.Applied[PatternLength].Confidence)
}

func TestTone_ReframesTowardTopTone(t *testing.T) {
	res := analysisWithRange(0, 280)
	res.TonePatterns.TopTones = []analyzer.ToneRank{{Tone: features.ToneTip, Effectiveness: 1.8}}

	app := New(nil).Apply("ship early and iterate", []string{PatternTone}, res)
	assert.True(t, strings.HasPrefix(app.ModifiedContent, "Pro tip:"))
	assert.True(t, app.Applied[PatternTone].Modified)
	assert.InDelta(t, 18.0, app.Applied[PatternTone].Confidence, 1e-9)
	assert.Equal(t, features.ToneTip, features.Classify(app.ModifiedContent))
}

func TestTone_AlreadyMatchingLeavesContent(t *testing.T) {
	res := analysisWithRange(0, 280)
	res.TonePatterns.TopTones = []analyzer.ToneRank{{Tone: features.ToneQuestion, Effectiveness: 12}}

	app := New(nil).Apply("What should we build next?", []string{PatternTone}, res)
	assert.Equal(t, "What should we build next?", app.ModifiedContent)
	assert.False(t, app.Applied[PatternTone].Modified)
	// Effectiveness x10 caps at 100.
	assert.Equal(t, 100.0, app.Applied[PatternTone].Confidence)
}

func TestFormat_AppendsHashtagsAndEmojis(t *testing.T) {
	res := analysisWithRange(0, 280)
	res.FormatPatterns.Hashtags.OptimalCount = 2
	res.FormatPatterns.Emojis.OptimalCount = 1
	res.ContentPatterns.TopWords = []analyzer.WordCount{{Text: "growth", Count: 9}, {Text: "builders", Count: 7}}

	app := New(nil).Apply("plain post", []string{PatternFormat}, res)
	assert.Contains(t, app.ModifiedContent, "#growth")
	assert.Contains(t, app.ModifiedContent, "#builders")
	assert.Contains(t, app.ModifiedContent, "🔥")
	assert.True(t, app.Applied[PatternFormat].Modified)
}

func TestFormat_AlreadyOptimal(t *testing.T) {
	res := analysisWithRange(0, 280)
	app := New(nil).Apply("plain post", []string{PatternFormat}, res)
	assert.False(t, app.Applied[PatternFormat].Modified)
	assert.Equal(t, 100.0, app.Applied[PatternFormat].Confidence)
}

func TestContent_SuggestsWithoutEditing(t *testing.T) {
	res := analysisWithRange(0, 280)
	res.ContentPatterns.TopWords = []analyzer.WordCount{
		{Text: "leverage", Count: 5}, {Text: "compound", Count: 4},
		{Text: "plain", Count: 3}, {Text: "signal", Count: 2},
	}
	res.ContentPatterns.TopPhrases = []analyzer.WordCount{{Text: "ship daily", Count: 3}}

	app := New(nil).Apply("plain post", []string{PatternContent}, res)
	// The draft is untouched; suggestions land in the log.
	assert.Equal(t, "plain post", app.ModifiedContent)
	require.NotEmpty(t, app.Modifications)
	assert.Contains(t, app.Applied[PatternContent].Detail, "leverage")
	// "plain" is already present and must not be suggested.
	assert.NotContains(t, app.Applied[PatternContent].Detail, "plain")
}

func TestApply_LengthRunsLast(t *testing.T) {
	res := analysisWithRange(0, 40)
	res.FormatPatterns.Hashtags.OptimalCount = 3
	res.ContentPatterns.TopWords = []analyzer.WordCount{
		{Text: "alpha", Count: 3}, {Text: "beta", Count: 2}, {Text: "gamma", Count: 1},
	}

	app := New(nil).Apply(strings.Repeat("word ", 8), []string{PatternLength, PatternFormat}, res)
	assert.LessOrEqual(t, len(app.ModifiedContent), 40)
}

func TestApply_OverallConfidenceIsWeighted(t *testing.T) {
	app := New(nil).Apply(strings.Repeat("a", 120), []string{PatternLength}, analysisWithRange(100, 150))
	// Single applied pattern: overall equals its confidence.
	assert.Equal(t, 100.0, app.Confidence)
}

func TestApply_UnknownPatternTypeSkipped(t *testing.T) {
	app := New(nil).Apply("hello", []string{"velocity"}, analysisWithRange(0, 280))
	assert.Empty(t, app.Applied)
	assert.Equal(t, 0.0, app.Confidence)
}
