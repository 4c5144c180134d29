package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/experiment"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/store"
)

func init() {
	expCmd := &cobra.Command{
		Use:   "experiment",
		Short: "Create and track A/B content experiments",
	}
	expCmd.AddCommand(newExperimentCreateCmd())
	expCmd.AddCommand(newExperimentRecordCmd())
	expCmd.AddCommand(newExperimentResultsCmd())
	expCmd.AddCommand(newExperimentCompleteCmd())
	expCmd.AddCommand(newExperimentCancelCmd())
	expCmd.AddCommand(newExperimentListCmd())
	rootCmd.AddCommand(expCmd)
}

func newExperimentCreateCmd() *cobra.Command {
	var (
		variants string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new experiment",
		Long: `Create a new A/B experiment. Variant 0 is the control.

Examples:
  xelite experiment create --variants "original text,punchier text"
  xelite experiment create            (prompts for variants)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variantList, err := resolveVariants(variants)
			if err != nil {
				return err
			}

			return withStore(func(a *app, s *store.SQLiteStore) error {
				if duration <= 0 {
					duration = a.cfg.Engine.ExperimentDurationDays
				}
				mgr := experiment.NewManager(s, a.log)
				exp, err := mgr.CreateTest(context.Background(), variantList, duration)
				if err != nil {
					return fmt.Errorf("failed to create experiment: %w", err)
				}

				fmt.Printf("Created experiment %s (%d days) with %d variants:\n", exp.ID, exp.DurationDays, len(exp.Variants))
				for i, v := range exp.Variants {
					label := ""
					if i == 0 {
						label = " (control)"
					}
					fmt.Printf("  %d: %s%s\n", i, v, label)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&variants, "variants", "v", "", "comma-separated content variants (first is control)")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "experiment duration in days")
	return cmd
}

// resolveVariants parses the flag or falls back to interactive entry.
func resolveVariants(flag string) ([]string, error) {
	if flag != "" {
		var list []string
		for _, v := range strings.Split(flag, ",") {
			if v = strings.TrimSpace(v); v != "" {
				list = append(list, v)
			}
		}
		if len(list) < 2 {
			return nil, fmt.Errorf("need at least 2 variants. Example: --variants \"control,treatment\"")
		}
		return list, nil
	}

	var list []string
	for {
		label := fmt.Sprintf("Variant %d", len(list))
		if len(list) == 0 {
			label += " (control)"
		} else if len(list) >= 2 {
			label += " (empty to finish)"
		}
		prompt := promptui.Prompt{Label: label}
		value, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		value = strings.TrimSpace(value)
		if value == "" {
			if len(list) >= 2 {
				return list, nil
			}
			fmt.Println("Need at least 2 variants.")
			continue
		}
		list = append(list, value)
	}
}

func newExperimentRecordCmd() *cobra.Command {
	var (
		variant     int
		impressions int
		successes   int
		engagement  float64
	)

	cmd := &cobra.Command{
		Use:   "record <id>",
		Short: "Record observed metrics for a variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				mgr := experiment.NewManager(s, a.log)
				err := mgr.RecordOutcome(context.Background(), args[0], variant, experiment.Outcome{
					Impressions: impressions,
					Successes:   successes,
					Engagement:  engagement,
				})
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("experiment '%s' not found", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Printf("Recorded %d/%d for variant %d of %s\n", successes, impressions, variant, args[0])
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&variant, "variant", "v", 0, "variant index")
	cmd.Flags().IntVarP(&impressions, "impressions", "i", 0, "impressions observed")
	cmd.Flags().IntVarP(&successes, "successes", "c", 0, "successes (conversions) observed")
	cmd.Flags().Float64VarP(&engagement, "engagement", "e", 0, "engagement sum observed")
	cmd.MarkFlagRequired("impressions")
	return cmd
}

func newExperimentResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results <id>",
		Short: "Show the significance report for an experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				mgr := experiment.NewManager(s, a.log)
				report, err := mgr.Analyze(context.Background(), args[0])
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("experiment '%s' not found", args[0])
				}
				if err != nil {
					return err
				}
				printReport(report)
				return nil
			})
		},
	}
	return cmd
}

func printReport(report *experiment.Report) {
	fmt.Printf("EXPERIMENT: %s    STATUS: %s\n\n", report.ID, report.Status)
	fmt.Println("VARIANT  IMPRESSIONS  SUCCESSES  RATE     95% CI")
	fmt.Println(strings.Repeat("─", 60))
	for _, v := range report.Variants {
		label := fmt.Sprintf("%d", v.Index)
		if v.Index == 0 {
			label += "*"
		}
		ci := fmt.Sprintf("[%.1f%%, %.1f%%]", v.CILower*100, v.CIUpper*100)
		if v.Impressions == 0 {
			ci = "N/A"
		}
		fmt.Printf("%-7s  %-11d  %-9d  %-6.2f%%  %s\n", label, v.Impressions, v.Successes, v.SuccessRate*100, ci)
	}
	fmt.Println("\n(* control)")

	for _, c := range report.Comparisons {
		verdict := "not significant"
		if c.Significant {
			verdict = "SIGNIFICANT"
		}
		fmt.Printf("variant %d vs control: z=%.2f (%s, %.1f%% confidence), Δrate=%+.2f%%, Δengagement=%+.2f\n",
			c.Variant, c.Z, verdict, c.Confidence, c.SuccessRateDelta*100, c.EngagementRateDelta)
	}

	if report.Winner != nil {
		fmt.Printf("\nWINNER: variant %d\n", *report.Winner)
	} else {
		fmt.Println("\nNo significant winner yet; control retained.")
	}
}

func newExperimentCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "winner <id>",
		Short: "Complete an experiment and persist its winner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				mgr := experiment.NewManager(s, a.log)
				report, err := mgr.Complete(context.Background(), args[0])
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("experiment '%s' not found", args[0])
				}
				if err != nil {
					return err
				}
				if report.Winner != nil {
					fmt.Printf("Completed %s: winner is variant %d\n", args[0], *report.Winner)
				} else {
					fmt.Printf("Completed %s with no significant winner; control retained.\n", args[0])
				}
				return nil
			})
		},
	}
	return cmd
}

func newExperimentCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an experiment without declaring a winner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				mgr := experiment.NewManager(s, a.log)
				err := mgr.Cancel(context.Background(), args[0])
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("experiment '%s' not found", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Printf("Cancelled %s\n", args[0])
				return nil
			})
		},
	}
	return cmd
}

func newExperimentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List experiments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				exps, err := s.ListExperiments(context.Background())
				if err != nil {
					return err
				}
				if len(exps) == 0 {
					fmt.Println("No experiments yet.")
					return nil
				}
				for _, exp := range exps {
					winner := "-"
					if exp.WinnerVariant != nil {
						winner = fmt.Sprintf("variant %d", *exp.WinnerVariant)
					}
					fmt.Printf("%s  %-9s  %d variants  winner: %s  created %s\n",
						exp.ID, exp.Status, len(exp.Variants), winner, exp.CreatedAt.Format("2006-01-02"))
				}
				return nil
			})
		},
	}
	return cmd
}
