package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/analyzer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/scorer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/store"
)

func init() {
	rootCmd.AddCommand(newScoreCmd())
}

func newScoreCmd() *cobra.Command {
	var (
		source string
		limit  int
		chart  string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Grade the mined patterns' effectiveness",
		Long: `Condense the analysis into a 0-100 effectiveness score with a letter
grade, or emit a chart-ready series.

Examples:
  xelite score
  xelite score --source naval
  xelite score --chart hourly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				records, err := s.ListReposts(context.Background(), source, limit)
				if err != nil {
					return fmt.Errorf("failed to load reposts: %w", err)
				}
				res := a.newAnalyzer().Analyze(records, analyzer.Options{
					Source: source,
					Limit:  limit,
					Mode:   a.engagementMode(),
				})

				if chart != "" {
					series := scorer.ChartSeries(res, scorer.ChartKind(chart))
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(series)
				}

				rep := scorer.Score(res)
				fmt.Printf("SCORE: %.1f / %d (%.1f%%)    GRADE: %s\n\n", rep.TotalScore, rep.MaxScore, rep.Percentage, rep.Grade)

				names := make([]string, 0, len(rep.Factors))
				for name := range rep.Factors {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Printf("  %-12s %.1f\n", name, rep.Factors[name])
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "filter by source handle")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "max records to analyze (0 = all)")
	cmd.Flags().StringVar(&chart, "chart", "", "emit a chart series instead (length|tone|hourly|weekday|correlation)")
	return cmd
}
