package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dugout/internal/logger"
)

// NewArticlesCmd creates the stored-articles management command
func NewArticlesCmd() *cobra.Command {
	articlesCmd := &cobra.Command{
		Use:   "articles",
		Short: "Manage the stored article table",
		Long:  `Inspect and clear the SQLite table of scored news articles.`,
	}

	articlesCmd.AddCommand(newArticlesStatsCmd())
	articlesCmd.AddCommand(newArticlesClearCmd())

	return articlesCmd
}

func newArticlesStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show stored-article statistics",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runArticlesStats(); err != nil {
				logger.Error("Failed to get article stats", err)
				os.Exit(1)
			}
		},
	}
}

func newArticlesClearCmd() *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all stored articles",
		Run: func(cmd *cobra.Command, args []string) {
			confirm, _ := cmd.Flags().GetBool("confirm")
			if err := runArticlesClear(confirm); err != nil {
				logger.Error("Failed to clear articles", err)
				os.Exit(1)
			}
		},
	}

	clearCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	return clearCmd
}

func runArticlesStats() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	stats, err := a.store.GetStats()
	if err != nil {
		return fmt.Errorf("failed to get article statistics: %w", err)
	}

	fmt.Println("Stored Articles")
	fmt.Println("===============")
	fmt.Printf("Articles     : %d\n", stats.ArticleCount)
	fmt.Printf("Store size   : %.2f MB\n", float64(stats.StoreSize)/1024/1024)
	fmt.Printf("Last updated : %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))
	return nil
}

func runArticlesClear(confirm bool) error {
	if !confirm {
		fmt.Print("This removes every stored article. Continue? [y/N]: ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Println("Stored articles cleared.")
	return nil
}
