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
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/validator"
)

func init() {
	rootCmd.AddCommand(newApplyCmd())
}

func newApplyCmd() *cobra.Command {
	var (
		source   string
		patterns string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "apply <content>",
		Short: "Rework a draft using the mined patterns",
		Long: `Apply mined patterns to a candidate post, reporting every modification
and a confidence score per applied pattern.

Examples:
  xelite apply "shipping the new release today"
  xelite apply "short take" --patterns length,tone`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := args[0]

			var types []string
			if patterns != "" {
				for _, p := range strings.Split(patterns, ",") {
					types = append(types, strings.TrimSpace(p))
				}
			}

			return withStore(func(a *app, s *store.SQLiteStore) error {
				records, err := s.ListReposts(context.Background(), source, 0)
				if err != nil {
					return fmt.Errorf("failed to load reposts: %w", err)
				}
				res := a.newAnalyzer().Analyze(records, analyzer.Options{Source: source, Mode: a.engagementMode()})

				appn := validator.New(a.log).Apply(content, types, res)
				if asJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(appn)
				}

				fmt.Printf("ORIGINAL (%d chars):\n  %s\n\n", len(appn.OriginalContent), appn.OriginalContent)
				fmt.Printf("MODIFIED (%d chars):\n  %s\n\n", len(appn.ModifiedContent), appn.ModifiedContent)
				for _, mod := range appn.Modifications {
					fmt.Printf("  - %s\n", mod)
				}
				fmt.Printf("\nCONFIDENCE: %.1f/100\n", appn.Confidence)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "analyze only this source handle")
	cmd.Flags().StringVarP(&patterns, "patterns", "p", "", "comma-separated pattern types (length,tone,format,content)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full application as JSON")
	return cmd
}
