// Package features derives per-record content features from raw repost text
// and metadata. Extraction is pure and deterministic; the same record always
// yields the same FeatureSet.
package features

import (
	"regexp"
	"strings"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
)

// LengthCategory buckets text by raw character count.
type LengthCategory string

const (
	LengthShort  LengthCategory = "short"  // <= 100 chars
	LengthMedium LengthCategory = "medium" // 101-200 chars
	LengthLong   LengthCategory = "long"   // > 200 chars
)

// Tone classifies the rhetorical style of a text. Classification is a fixed
// priority chain; the first matching tone wins.
type Tone string

const (
	ToneQuestion     Tone = "question"
	ToneCallToAction Tone = "call_to_action"
	ToneTip          Tone = "tip"
	ToneStory        Tone = "story"
	ToneFact         Tone = "fact"
	ToneGeneral      Tone = "general"
)

// FeatureSet holds the derived features for a single repost record.
type FeatureSet struct {
	Length         int
	LengthCategory LengthCategory
	Tone           Tone
	ContentType    Tone
	HashtagCount   int
	EmojiCount     int
	URLCount       int
	MentionCount   int
	Hour           int // 0-23, -1 when the record has no usable timestamp
	Weekday        int // 0-6 (Sunday=0), -1 when the record has no usable timestamp
}

var (
	hashtagRe = regexp.MustCompile(`#\w+`)
	mentionRe = regexp.MustCompile(`@\w+`)
	urlRe     = regexp.MustCompile(`https?://`)

	// "when" is deliberately absent: it opens narrative sentences far more
	// often than questions, and the story cue "when i" depends on it.
	interrogativeLeads = []string{"what", "how", "why", "where", "who", "which", "is", "are", "do", "does", "can", "should", "would"}
	ctaCues            = []string{"follow", "check out", "click", "subscribe", "sign up", "join", "retweet", "share this"}
	tipCues            = []string{"pro tip", "tip:", "here's a tip", "advice", "lesson"}
	// Bare "tip"/"tips" must match as a whole word only; a substring check
	// would fire on words like "multiple".
	tipWordRe = regexp.MustCompile(`\btips?\b`)
	storyCues          = []string{"when i", "my story", "i remember", "years ago", "true story"}
	factCues           = []string{"the truth", "fact", "studies show", "data shows"}
)

// Extract derives a FeatureSet from one record.
func Extract(rec models.RepostRecord) FeatureSet {
	fs := FeatureSet{
		Length:         len(rec.Text),
		LengthCategory: CategorizeLength(len(rec.Text)),
		Tone:           Classify(rec.Text),
		HashtagCount:   len(hashtagRe.FindAllString(rec.Text, -1)),
		EmojiCount:     countEmojis(rec.Text),
		URLCount:       len(urlRe.FindAllString(rec.Text, -1)),
		MentionCount:   countMentions(rec.Text),
		Hour:           -1,
		Weekday:        -1,
	}
	fs.ContentType = fs.Tone
	if !rec.Timestamp.IsZero() {
		fs.Hour = rec.Timestamp.Hour()
		fs.Weekday = int(rec.Timestamp.Weekday())
	}
	return fs
}

// CategorizeLength maps a character count onto a length bucket.
func CategorizeLength(n int) LengthCategory {
	switch {
	case n <= 100:
		return LengthShort
	case n <= 200:
		return LengthMedium
	default:
		return LengthLong
	}
}

// Bounds returns the inclusive character range a length category covers,
// clamped to the platform maximum of 280.
func (c LengthCategory) Bounds() (min, max int) {
	switch c {
	case LengthShort:
		return 0, 100
	case LengthMedium:
		return 101, 200
	default:
		return 201, 280
	}
}

// Classify returns the tone of a text. The priority order is fixed:
// question, call_to_action, tip, story, fact, general.
func Classify(text string) Tone {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ToneGeneral
	}

	if strings.HasSuffix(strings.TrimRight(lower, `"')`), "?") || hasInterrogativeLead(lower) {
		return ToneQuestion
	}
	if containsAny(lower, ctaCues) {
		return ToneCallToAction
	}
	if containsAny(lower, tipCues) || tipWordRe.MatchString(lower) {
		return ToneTip
	}
	if containsAny(lower, storyCues) {
		return ToneStory
	}
	if containsAny(lower, factCues) {
		return ToneFact
	}
	return ToneGeneral
}

func hasInterrogativeLead(lower string) bool {
	first, _, _ := strings.Cut(lower, " ")
	first = strings.TrimRight(first, ",.:;!")
	for _, w := range interrogativeLeads {
		if first == w {
			return true
		}
	}
	return false
}

func containsAny(lower string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// countMentions counts @handle tokens, skipping bare email-style matches.
func countMentions(text string) int {
	count := 0
	for _, m := range mentionRe.FindAllStringIndex(text, -1) {
		if m[0] > 0 {
			prev := text[m[0]-1]
			if prev != ' ' && prev != '\n' && prev != '\t' && prev != '.' && prev != ',' && prev != '(' {
				continue
			}
		}
		count++
	}
	return count
}

func countEmojis(text string) int {
	count := 0
	for _, r := range text {
		if isEmoji(r) {
			count++
		}
	}
	return count
}

// isEmoji reports whether a rune falls in the common emoji code-point ranges.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols & pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport & map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // symbols & pictographs extended
		return true
	case r >= 0x2600 && r <= 0x26FF: // miscellaneous symbols
		return true
	case r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	case r == 0x2764: // heavy black heart
		return true
	default:
		return false
	}
}
