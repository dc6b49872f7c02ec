package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dugout/internal/config"
)

var cfgFile string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dugout",
		Short: "Look up MLB teams and players, with news sentiment",
		Long: `Dugout - MLB lookup with news sentiment

Resolves a free-text query (player, team, or "mlb") against a locally
cached catalog of MLB entities, then enriches the match with season
statistics and recent news coverage scored for sentiment. Scored
articles are stored in a local SQLite table for later analysis.

Examples:
  # One-shot lookup
  dugout lookup "Aaron Judge"

  # Substring matching with an explicit news window
  dugout lookup yankees --mode substring --from 2025-08-01

  # Interactive loop
  dugout prompt

  # Force a catalog refresh
  dugout catalog refresh`,
		Version: "1.0.0",
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .dugout.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewLookupCmd())
	rootCmd.AddCommand(NewPromptCmd())
	rootCmd.AddCommand(NewCatalogCmd())
	rootCmd.AddCommand(NewArticlesCmd())

	// Initialize config before running any command
	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in config file and ENV variables
func initConfig() {
	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
