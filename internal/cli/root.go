// Package cli is the surrounding-application surface over the engine:
// cobra commands for analysis, pattern application, experiments, and decay
// checks. The engine packages themselves stay free of any CLI concern.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "xelite",
	Short: "Xelite repost engine - mine repost patterns and run content experiments",
	Long: `Xelite turns a corpus of repost records into statistically grounded
content guidance: mined patterns, effectiveness scores, pattern-applied
drafts, A/B experiments, and decay checks on aging patterns.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", getEnvOrDefault("XELITE_CONFIG", ""), "config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", getEnvOrDefault("XELITE_DB_PATH", ""), "database path (overrides config)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
