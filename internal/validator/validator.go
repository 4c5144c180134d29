// Package validator applies mined patterns to candidate content, producing a
// modified draft plus a confidence score per applied pattern.
package validator

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/analyzer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/features"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
)

// Pattern type names accepted by Apply. They match the analyzer's
// recommendation type tags.
const (
	PatternLength  = analyzer.RecLength
	PatternTone    = analyzer.RecTone
	PatternFormat  = analyzer.RecFormat
	PatternContent = analyzer.RecContent
)

// Per-type weights for the overall confidence. They are renormalized over
// the pattern types actually applied, so requesting a subset keeps the
// overall score on the same 0-100 scale.
var confidenceWeights = map[string]float64{
	PatternLength:  0.30,
	PatternTone:    0.30,
	PatternFormat:  0.25,
	PatternContent: 0.15,
}

// Application records everything one Apply call did to a piece of content.
type Application struct {
	OriginalContent string                    `json:"original_content"`
	ModifiedContent string                    `json:"modified_content"`
	Applied         map[string]AppliedPattern `json:"applied_patterns"`
	Modifications   []string                  `json:"modifications"`
	Confidence      float64                   `json:"confidence"`
	Analysis        *analyzer.Result          `json:"pattern_analysis"`
}

// AppliedPattern is the before/after detail for one pattern type.
type AppliedPattern struct {
	Detail     string  `json:"detail"`
	Before     string  `json:"before"`
	After      string  `json:"after"`
	Modified   bool    `json:"modified"`
	Confidence float64 `json:"confidence"`
}

// Validator applies patterns from an analysis to candidate content.
type Validator struct {
	log *logrus.Logger
}

func New(log *logrus.Logger) *Validator {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Validator{log: log}
}

// Apply reworks content toward the analysis's optimal values for the
// requested pattern types. A nil/empty analysis returns the content
// unchanged with confidence 0. Types not recognized are skipped. The length
// pattern runs last so earlier insertions cannot push the draft back out of
// the optimal range.
func (v *Validator) Apply(content string, types []string, res *analyzer.Result) Application {
	app := Application{
		OriginalContent: content,
		ModifiedContent: content,
		Applied:         map[string]AppliedPattern{},
		Analysis:        res,
	}
	if res.Empty() || content == "" {
		return app
	}
	if len(types) == 0 {
		types = []string{PatternTone, PatternContent, PatternFormat, PatternLength}
	}

	ordered := orderTypes(types)
	for _, pt := range ordered {
		var applied AppliedPattern
		switch pt {
		case PatternTone:
			applied = v.applyTone(&app, res)
		case PatternContent:
			applied = v.applyContent(&app, res)
		case PatternFormat:
			applied = v.applyFormat(&app, res)
		case PatternLength:
			applied = v.applyLength(&app, res)
		default:
			continue
		}
		app.Applied[pt] = applied
	}

	app.Confidence = overallConfidence(app.Applied)
	v.log.WithFields(logrus.Fields{
		"patterns":   len(app.Applied),
		"confidence": app.Confidence,
	}).Debug("patterns applied")
	return app
}

// orderTypes keeps the caller's selection but forces length to the end.
func orderTypes(types []string) []string {
	out := make([]string, 0, len(types))
	hasLength := false
	for _, t := range types {
		if t == PatternLength {
			hasLength = true
			continue
		}
		out = append(out, t)
	}
	if hasLength {
		out = append(out, PatternLength)
	}
	return out
}

func overallConfidence(applied map[string]AppliedPattern) float64 {
	var sum, weight float64
	for pt, ap := range applied {
		w := confidenceWeights[pt]
		sum += w * ap.Confidence
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return math.Round(sum/weight*100) / 100
}

func (app *Application) record(note string) {
	app.Modifications = append(app.Modifications, note)
}

func (v *Validator) applyTone(app *Application, res *analyzer.Result) AppliedPattern {
	ap := AppliedPattern{Before: app.ModifiedContent}
	if len(res.TonePatterns.TopTones) == 0 {
		ap.After = ap.Before
		return ap
	}
	target := res.TonePatterns.TopTones[0]
	current := features.Classify(app.ModifiedContent)
	ap.Detail = fmt.Sprintf("target tone %s (current %s)", target.Tone, current)
	// Confidence follows the target tone's effectiveness, scaled x10.
	ap.Confidence = math.Min(100, target.Effectiveness*10)

	if current != target.Tone {
		if prefix := toneFraming(target.Tone); prefix != "" {
			app.ModifiedContent = prefix + " " + app.ModifiedContent
			ap.Modified = true
			app.record(fmt.Sprintf("tone: reframed %s as %s", current, target.Tone))
		}
	}
	ap.After = app.ModifiedContent
	return ap
}

// toneFraming returns a lead-in that shifts a text toward a tone.
func toneFraming(t features.Tone) string {
	switch t {
	case features.ToneQuestion:
		return "What do you think:"
	case features.ToneCallToAction:
		return "Check out this:"
	case features.ToneTip:
		return "Pro tip:"
	case features.ToneStory:
		return "When I learned this, it changed everything:"
	case features.ToneFact:
		return "Fact:"
	default:
		return ""
	}
}

func (v *Validator) applyContent(app *Application, res *analyzer.Result) AppliedPattern {
	ap := AppliedPattern{Before: app.ModifiedContent}
	lower := strings.ToLower(app.ModifiedContent)

	var words []string
	for _, wc := range res.ContentPatterns.TopWords {
		if len(words) == 3 {
			break
		}
		if !strings.Contains(lower, wc.Text) {
			words = append(words, wc.Text)
		}
	}
	var phrases []string
	for _, pc := range res.ContentPatterns.TopPhrases {
		if len(phrases) == 2 {
			break
		}
		if !strings.Contains(lower, pc.Text) {
			phrases = append(phrases, pc.Text)
		}
	}

	if len(words) > 0 || len(phrases) > 0 {
		ap.Detail = fmt.Sprintf("suggest words %v, phrases %v", words, phrases)
		app.record("content: suggested high-engagement vocabulary " + ap.Detail)
	}
	// Suggestions are advisory; the draft text is left alone.
	ap.After = app.ModifiedContent
	ap.Confidence = math.Min(100, float64(len(words)+len(phrases))*20)
	return ap
}

func (v *Validator) applyFormat(app *Application, res *analyzer.Result) AppliedPattern {
	ap := AppliedPattern{Before: app.ModifiedContent}
	fs := features.Extract(models.RepostRecord{Text: app.ModifiedContent})

	var added []string
	wantTags := res.FormatPatterns.Hashtags.OptimalCount
	if fs.HashtagCount < wantTags {
		for _, wc := range res.ContentPatterns.TopWords {
			if fs.HashtagCount+len(added) >= wantTags {
				break
			}
			tag := "#" + strings.ReplaceAll(wc.Text, " ", "")
			if !strings.Contains(strings.ToLower(app.ModifiedContent), strings.ToLower(tag)) {
				added = append(added, tag)
			}
		}
	}

	wantEmojis := res.FormatPatterns.Emojis.OptimalCount
	var emojis []string
	if fs.EmojiCount < wantEmojis {
		pool := []string{"🔥", "✨", "💡", "🚀"}
		for i := 0; fs.EmojiCount+len(emojis) < wantEmojis && i < len(pool); i++ {
			emojis = append(emojis, pool[i])
		}
	}

	if len(added)+len(emojis) > 0 {
		extra := strings.Join(append(added, emojis...), " ")
		app.ModifiedContent = strings.TrimRight(app.ModifiedContent, " ") + " " + extra
		ap.Modified = true
		ap.Detail = fmt.Sprintf("appended %d hashtag(s), %d emoji(s)", len(added), len(emojis))
		app.record("format: " + ap.Detail)
		ap.Confidence = 70
	} else {
		ap.Detail = "format already at optimal counts"
		ap.Confidence = 100
	}
	ap.After = app.ModifiedContent
	return ap
}

func (v *Validator) applyLength(app *Application, res *analyzer.Result) AppliedPattern {
	ap := AppliedPattern{Before: app.ModifiedContent}
	rng := res.LengthPatterns.OptimalRange
	ap.Detail = fmt.Sprintf("optimal range [%d, %d]", rng.Min, rng.Max)

	n := len(app.ModifiedContent)
	switch {
	case rng.Contains(n):
		ap.Confidence = 100
	case n < rng.Min:
		app.ModifiedContent = padToRange(app.ModifiedContent, rng)
		ap.Modified = true
		ap.Confidence = 75
		app.record(fmt.Sprintf("length: padded %d -> %d chars", n, len(app.ModifiedContent)))
	default:
		app.ModifiedContent = trimToRange(app.ModifiedContent, rng)
		ap.Modified = true
		ap.Confidence = 75
		app.record(fmt.Sprintf("length: trimmed %d -> %d chars", n, len(app.ModifiedContent)))
	}
	ap.After = app.ModifiedContent
	return ap
}

// padToRange grows text into the range by duplicating it, then trims back
// under the ceiling on a word boundary where possible.
func padToRange(text string, rng analyzer.LengthRange) string {
	padded := text
	for len(padded) < rng.Min {
		padded = padded + " " + text
	}
	if len(padded) > rng.Max {
		padded = trimToRange(padded, rng)
	}
	return padded
}

// trimToRange cuts text under the ceiling, preferring the nearest word
// boundary that still satisfies the floor. The cut point backs up to a rune
// boundary so a multi-byte rune is never split.
func trimToRange(text string, rng analyzer.LengthRange) string {
	max := rng.Max
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	cut := text[:max]
	if idx := strings.LastIndex(cut, " "); idx >= rng.Min {
		return strings.TrimRight(cut[:idx], " ")
	}
	return strings.TrimRight(cut, " ")
}
