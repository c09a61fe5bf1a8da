package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talgya/mini-empire/internal/empire"
)

// ShowResult is the JSON form of the show command.
type ShowResult struct {
	LastTick uint64         `json:"last_tick"`
	Memory   *empire.Memory `json:"memory"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted empire memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			mem, err := db.LoadMemory()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load memory", err)
			}
			tick, err := db.LastTick()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read last tick", err)
			}

			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), ShowResult{LastTick: tick, Memory: mem})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "last tick:   %d\n", tick)
			fmt.Fprintf(w, "trade index: %d\n", mem.TradeIndex)
			fmt.Fprintf(w, "ally forts:  %s\n", listOrNone(mem.AllyForts))
			fmt.Fprintf(w, "ally swaps:  %s\n", listOrNone(mem.AllySwaps))
			fmt.Fprintf(w, "strikes:     %d\n", len(mem.ActiveStrikes))
			for _, s := range mem.ActiveStrikes {
				fmt.Fprintf(w, "  launched %d toward %s\n", s.Tick, s.Site)
			}
			return nil
		},
	}
}

// NewEventsCommand creates the events command.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print the most recent empire events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return WrapExitError(ExitCommandError, "invalid --limit", fmt.Errorf("must be positive, got %d", limit))
			}
			db, err := openDB(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			events, err := db.RecentEvents(limit)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read events", err)
			}

			if rootOpts.Format == "json" {
				if events == nil {
					events = []empire.Event{}
				}
				return writeJSON(cmd.OutOrStdout(), events)
			}
			for _, e := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%8d  %-8s %s\n", e.Tick, e.Category, e.Description)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to print")
	return cmd
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
