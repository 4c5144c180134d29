package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/store"
)

func init() {
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a JSON snapshot of repost records",
		Long: `Import repost records from a JSON array. Numeric strings in engagement
fields are coerced; records with unusable timestamps are kept but excluded
from time-based aggregations.

Example:
  xelite import reposts.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			var records []models.RepostRecord
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			return withStore(func(a *app, s *store.SQLiteStore) error {
				ctx := context.Background()
				for _, rec := range records {
					if _, err := s.InsertRepost(ctx, rec); err != nil {
						return err
					}
				}
				fmt.Printf("Imported %d record(s) from %s\n", len(records), args[0])
				return nil
			})
		},
	}
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		source string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored repost records as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(a *app, s *store.SQLiteStore) error {
				records, err := s.ListReposts(context.Background(), source, limit)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			})
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "filter by source handle")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "max records to export (0 = all)")
	return cmd
}
