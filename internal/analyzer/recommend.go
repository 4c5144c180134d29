package analyzer

import (
	"fmt"
	"time"
)

// Recommendation type tags; the validator accepts the same names.
const (
	RecLength  = "length"
	RecTone    = "tone"
	RecFormat  = "format"
	RecTiming  = "timing"
	RecContent = "content"
)

func (a *Analyzer) recommend(res *Result) []Recommendation {
	var recs []Recommendation

	lr := res.LengthPatterns.OptimalRange
	recs = append(recs, Recommendation{
		Type:        RecLength,
		Title:       "Target the high-engagement length band",
		Description: fmt.Sprintf("Posts between %d and %d characters earn the highest average engagement in this corpus.", lr.Min, lr.Max),
		Priority:    "high",
	})

	if len(res.TonePatterns.TopTones) > 0 {
		top := res.TonePatterns.TopTones[0]
		recs = append(recs, Recommendation{
			Type:        RecTone,
			Title:       fmt.Sprintf("Lead with a %s tone", top.Tone),
			Description: fmt.Sprintf("%s posts perform at %.1fx the corpus average.", top.Tone, top.Effectiveness),
			Priority:    "high",
		})
	}

	recs = append(recs, Recommendation{
		Type:        RecFormat,
		Title:       "Tune hashtag and emoji counts",
		Description: fmt.Sprintf("Best-performing posts carry %d hashtag(s) and %d emoji(s).", res.FormatPatterns.Hashtags.OptimalCount, res.FormatPatterns.Emojis.OptimalCount),
		Priority:    "medium",
	})

	if len(res.TimePatterns.BestHours) > 0 {
		recs = append(recs, Recommendation{
			Type:        RecTiming,
			Title:       "Post in the proven window",
			Description: fmt.Sprintf("Hour %02d:00 has the strongest average engagement; best weekday is %s.", res.TimePatterns.BestHours[0], weekdayName(res.TimePatterns.BestDays)),
			Priority:    "medium",
		})
	}

	if len(res.ContentPatterns.TopWords) > 0 {
		recs = append(recs, Recommendation{
			Type:        RecContent,
			Title:       "Reuse proven vocabulary",
			Description: fmt.Sprintf("High-engagement posts lean on words like %q.", res.ContentPatterns.TopWords[0].Text),
			Priority:    "low",
		})
	}
	return recs
}

func weekdayName(bestDays []int) string {
	if len(bestDays) == 0 {
		return "n/a"
	}
	return time.Weekday(bestDays[0]).String()
}
