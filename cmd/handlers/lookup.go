package handlers

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dugout/internal/logger"
	"dugout/internal/resolve"
)

// NewLookupCmd creates the one-shot lookup command
func NewLookupCmd() *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Resolve a name and show stats plus scored news",
		Long: `Resolve a free-text query against the cached entity catalog, then
fetch season statistics and recent news scored for sentiment. The
literal "mlb" resolves to the league (news only, no stats).`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mode, _ := cmd.Flags().GetString("mode")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			if err := runLookup(cmd, strings.Join(args, " "), mode, from, to); err != nil {
				logger.Error("lookup failed", err)
				os.Exit(1)
			}
		},
	}

	lookupCmd.Flags().String("mode", "substring", "matching mode: exact or substring")
	lookupCmd.Flags().String("from", "", "news window start (YYYY-MM-DD, default first of month)")
	lookupCmd.Flags().String("to", "", "news window end (YYYY-MM-DD, default today)")
	return lookupCmd
}

func runLookup(cmd *cobra.Command, query, modeFlag, fromFlag, toFlag string) error {
	mode, err := parseMode(modeFlag)
	if err != nil {
		return err
	}
	window, err := newsWindow(fromFlag, toFlag)
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
	if cat.IsEmpty() {
		fmt.Println("Entity catalog is empty; upstream may be unreachable. Only \"mlb\" will resolve.")
	}

	resolver := resolve.NewResolver(cat, mode)
	resolution := resolver.Resolve(query)
	if !resolution.Found {
		fmt.Printf("No team or player matched %q. Try the full name, or \"mlb\" for league news.\n", query)
		return nil
	}
	if len(resolution.Matches) > 1 {
		fmt.Printf("Matched %d entities; using %q.\n", len(resolution.Matches), resolution.Entity.Name)
	}

	fmt.Println(a.enrichAndRender(ctx, resolution, window))
	return nil
}
