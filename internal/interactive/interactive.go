package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"dugout/internal/resolve"
)

// ExitToken terminates the prompt loop (case-insensitive).
const ExitToken = "exit"

// Handler manages the interactive lookup loop: prompt, resolve,
// enrich, repeat until the exit token.
type Handler struct {
	scanner  *bufio.Scanner
	out      io.Writer
	resolver *resolve.Resolver
	enrich   func(ctx context.Context, resolution resolve.Resolution) string
}

// NewHandler creates an interactive handler reading from stdin. enrich
// runs the pipeline for a successful resolution and returns the
// rendered output.
func NewHandler(resolver *resolve.Resolver, enrich func(context.Context, resolve.Resolution) string) *Handler {
	return &Handler{
		scanner:  bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
		resolver: resolver,
		enrich:   enrich,
	}
}

// Run loops until the user types the exit token or input ends. An
// unresolvable query re-prompts instead of ending the session.
func (h *Handler) Run(ctx context.Context) error {
	for {
		fmt.Fprint(h.out, "\nEnter a player, team, or league (type EXIT to quit): ")

		if !h.scanner.Scan() {
			if err := h.scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil // EOF
		}

		input := strings.TrimSpace(h.scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, ExitToken) {
			fmt.Fprintln(h.out, "Goodbye!")
			return nil
		}

		resolution := h.resolver.Resolve(input)
		if !resolution.Found {
			fmt.Fprintln(h.out, "Invalid input. Please enter a valid player or team name.")
			continue
		}
		if len(resolution.Matches) > 1 {
			fmt.Fprintf(h.out, "Matched %d entities; using %q.\n", len(resolution.Matches), resolution.Entity.Name)
		}

		fmt.Fprintln(h.out, h.enrich(ctx, resolution))
	}
}
