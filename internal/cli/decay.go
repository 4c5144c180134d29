package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/decay"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/store"
)

func init() {
	decayCmd := &cobra.Command{
		Use:   "decay",
		Short: "Track and evaluate pattern performance decay",
	}
	decayCmd.AddCommand(newDecayCheckCmd())
	decayCmd.AddCommand(newDecayRecordCmd())
	rootCmd.AddCommand(decayCmd)
}

func newDecayCheckCmd() *cobra.Command {
	var (
		patternType   string
		patternDetail string
		windowDays    int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate whether a pattern's performance is decaying",
		Long: `Fit a trend over a pattern's recorded performance history and report
whether the pattern should be retired.

Example:
  xelite decay check --type tone --detail question --window 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				det := decay.New(decay.Config{
					SlopeRatio:    a.cfg.Decay.SlopeRatio,
					ConfidenceBar: a.cfg.Decay.ConfidenceBar,
				}, s, a.log)

				if windowDays <= 0 {
					windowDays = a.cfg.Decay.WindowDays
				}
				report, err := det.Detect(context.Background(), patternType, patternDetail, windowDays)
				if err != nil {
					return err
				}

				fmt.Printf("PATTERN: %s/%s    OBSERVATIONS: %d\n", report.PatternType, report.PatternDetail, report.Observations)
				fmt.Printf("TREND: %s (slope %.3f, consistency %.2f)\n", report.Trend.Direction, report.Trend.Slope, report.Trend.Consistency)
				fmt.Printf("DECAY SCORE: %.2f    CONFIDENCE: %.2f\n", report.DecayScore, report.Confidence)
				if report.DecayDetected {
					fmt.Printf("DECAY DETECTED — recommendation: %s\n", report.Recommendation)
				} else {
					fmt.Printf("No decay detected — recommendation: %s\n", report.Recommendation)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&patternType, "type", "t", "", "pattern type (length|tone|format|timing|content)")
	cmd.Flags().StringVarP(&patternDetail, "detail", "d", "", "pattern detail (e.g. tone name)")
	cmd.Flags().IntVarP(&windowDays, "window", "w", 0, "observation window in days")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("detail")
	return cmd
}

func newDecayRecordCmd() *cobra.Command {
	var (
		patternType   string
		patternDetail string
		value         float64
		observedAt    string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Append one performance observation for a pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := time.Now().UTC()
			if observedAt != "" {
				parsed, err := time.Parse("2006-01-02", observedAt)
				if err != nil {
					return fmt.Errorf("invalid --observed-at date: %w", err)
				}
				ts = parsed
			}

			return withStore(func(a *app, s *store.SQLiteStore) error {
				err := s.AppendObservation(context.Background(), models.PerformanceObservation{
					PatternType:   patternType,
					PatternDetail: patternDetail,
					Value:         value,
					ObservedAt:    ts,
				})
				if err != nil {
					return err
				}
				fmt.Printf("Recorded %s/%s = %.2f at %s\n", patternType, patternDetail, value, ts.Format("2006-01-02"))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&patternType, "type", "t", "", "pattern type")
	cmd.Flags().StringVarP(&patternDetail, "detail", "d", "", "pattern detail")
	cmd.Flags().Float64VarP(&value, "value", "v", 0, "observed performance value")
	cmd.Flags().StringVar(&observedAt, "observed-at", "", "observation date (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("detail")
	cmd.MarkFlagRequired("value")
	return cmd
}
