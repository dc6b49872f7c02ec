package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dugout/internal/logger"
)

// NewCatalogCmd creates the catalog management command
func NewCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the cached entity catalog",
		Long:  `Inspect and refresh the locally cached catalog of MLB teams and players.`,
	}

	catalogCmd.AddCommand(newCatalogStatsCmd())
	catalogCmd.AddCommand(newCatalogRefreshCmd())

	return catalogCmd
}

func newCatalogStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog contents and freshness",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runCatalogStats(); err != nil {
				logger.Error("Failed to get catalog stats", err)
				os.Exit(1)
			}
		},
	}
}

func newCatalogRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the catalog from the MLB StatsAPI",
		Long:  `Enumerate every team and its active roster upstream and overwrite the local catalog cache, regardless of freshness.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runCatalogRefresh(cmd); err != nil {
				logger.Error("Failed to refresh catalog", err)
				os.Exit(1)
			}
		},
	}
}

func runCatalogStats() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	cat, ok := a.catalog.Cached()
	if !ok {
		fmt.Println("No catalog cache found. Run `dugout catalog refresh` to build one.")
		return nil
	}

	fresh := "stale"
	if a.catalog.Fresh(cat.FetchedAt) {
		fresh = "fresh"
	}
	fmt.Println("Entity Catalog")
	fmt.Println("==============")
	fmt.Printf("Teams      : %d\n", len(cat.Teams))
	fmt.Printf("Players    : %d\n", len(cat.Players))
	fmt.Printf("Fetched at : %s (%s, cutoff %s)\n",
		cat.FetchedAt.Format("2006-01-02"), fresh, a.cfg.Catalog.Cutoff)
	return nil
}

func runCatalogRefresh(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	cat := a.catalog.Refresh(cmd.Context())
	if cat.IsEmpty() {
		fmt.Println("Refresh produced an empty catalog; the StatsAPI may be unreachable.")
		return nil
	}
	fmt.Printf("Catalog refreshed: %d teams, %d players.\n", len(cat.Teams), len(cat.Players))
	return nil
}
