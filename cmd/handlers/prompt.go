package handlers

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dugout/internal/interactive"
	"dugout/internal/logger"
	"dugout/internal/news"
	"dugout/internal/resolve"
)

// NewPromptCmd creates the interactive prompt command
func NewPromptCmd() *cobra.Command {
	promptCmd := &cobra.Command{
		Use:   "prompt",
		Short: "Interactive lookup loop",
		Long: `Repeatedly prompt for a player, team, or league name and show the
enriched results. Type "exit" to quit. The news window is the first
day of the current month through today.`,
		Run: func(cmd *cobra.Command, args []string) {
			mode, _ := cmd.Flags().GetString("mode")
			if err := runPrompt(cmd, mode); err != nil {
				logger.Error("prompt session failed", err)
				os.Exit(1)
			}
		},
	}

	promptCmd.Flags().String("mode", "exact", "matching mode: exact or substring")
	return promptCmd
}

func runPrompt(cmd *cobra.Command, modeFlag string) error {
	mode, err := parseMode(modeFlag)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	cat := a.catalog.EnsureFresh(ctx)
	resolver := resolve.NewResolver(cat, mode)

	handler := interactive.NewHandler(resolver, func(ctx context.Context, resolution resolve.Resolution) string {
		window := news.CurrentMonthWindow(time.Now())
		return a.enrichAndRender(ctx, resolution, window)
	})
	return handler.Run(ctx)
}
