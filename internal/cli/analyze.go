package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/analyzer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/store"
)

func init() {
	rootCmd.AddCommand(newAnalyzeCmd())
}

func newAnalyzeCmd() *cobra.Command {
	var (
		source string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Mine patterns from the stored repost corpus",
		Long: `Run the full pattern analysis over stored repost records.

Examples:
  xelite analyze
  xelite analyze --source naval --limit 500
  xelite analyze --json > analysis.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				ctx := context.Background()
				records, err := s.ListReposts(ctx, source, limit)
				if err != nil {
					return fmt.Errorf("failed to load reposts: %w", err)
				}

				res := a.newAnalyzer().Analyze(records, analyzer.Options{
					Source: source,
					Limit:  limit,
					Mode:   a.engagementMode(),
				})

				if asJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(res)
				}
				printAnalysis(res)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "filter by source handle")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "max records to analyze (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw analysis as JSON")
	return cmd
}

func printAnalysis(res *analyzer.Result) {
	if res.Empty() {
		fmt.Println("No records matched; nothing to analyze.")
		return
	}

	s := res.Summary
	fmt.Printf("RECORDS: %d    TOTAL ENGAGEMENT: %.0f    AVG: %.1f/post    AVG LENGTH: %.0f chars\n",
		s.TotalReposts, s.TotalEngagement, s.AvgEngagement, s.AvgLength)
	if !s.DateRange.From.IsZero() {
		fmt.Printf("RANGE: %s — %s\n", s.DateRange.From.Format("2006-01-02"), s.DateRange.To.Format("2006-01-02"))
	}
	fmt.Println()

	fmt.Printf("Optimal length: %d-%d chars (length/engagement r=%.2f)\n",
		res.LengthPatterns.OptimalRange.Min, res.LengthPatterns.OptimalRange.Max, res.LengthPatterns.Correlation)

	if len(res.TonePatterns.TopTones) > 0 {
		parts := make([]string, 0, len(res.TonePatterns.TopTones))
		for _, tr := range res.TonePatterns.TopTones {
			parts = append(parts, fmt.Sprintf("%s (%.1fx)", tr.Tone, tr.Effectiveness))
		}
		fmt.Printf("Top tones: %s\n", strings.Join(parts, ", "))
	}

	fmt.Printf("Optimal counts: %d hashtag(s), %d emoji(s), %d mention(s), %d url(s)\n",
		res.FormatPatterns.Hashtags.OptimalCount, res.FormatPatterns.Emojis.OptimalCount,
		res.FormatPatterns.Mentions.OptimalCount, res.FormatPatterns.URLs.OptimalCount)

	fmt.Printf("Strongest engagement signal: %s (r=%.2f)\n",
		res.Correlation.Strongest, res.Correlation.ByFeature[res.Correlation.Strongest])

	if len(res.TimePatterns.BestHours) > 0 {
		fmt.Printf("Best hours: %v    Best days: %v\n", res.TimePatterns.BestHours, res.TimePatterns.BestDays)
	}

	fmt.Println("\nRECOMMENDATIONS")
	fmt.Println(strings.Repeat("─", 60))
	for _, rec := range res.Recommendations {
		fmt.Printf("[%-6s] %s\n         %s\n", rec.Priority, rec.Title, rec.Description)
	}
}
