package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/talgya/mini-empire/internal/empire"
	"github.com/talgya/mini-empire/internal/tuning"
)

// StrikeOptions holds flags for the strike subcommands.
type StrikeOptions struct {
	*RootOptions
	Tick   uint64
	Site   string
	Tuning string
}

// NewStrikeCommand creates the strike command and its subcommands.
func NewStrikeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StrikeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "strike",
		Short: "Track long-range strikes",
	}
	cmd.PersistentFlags().Uint64Var(&opts.Tick, "tick", 0, "launch tick (add) or current tick (report)")
	cmd.PersistentFlags().StringVar(&opts.Tuning, "tuning", "configs/tuning.yaml", "tuning file with the strike flight time")

	add := &cobra.Command{
		Use:   "add",
		Short: "Record a strike launched at --tick toward --site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateSites([]string{opts.Site}); err != nil {
				return err
			}
			return withEmpire(opts, func(emp *empire.Empire) error {
				emp.AddStrike(opts.Tick, opts.Site)
				fmt.Fprintf(cmd.OutOrStdout(), "tracking strike on %s launched at %d\n", opts.Site, opts.Tick)
				return nil
			})
		},
	}
	add.Flags().StringVar(&opts.Site, "site", "", "target site (required)")
	_ = add.MarkFlagRequired("site")

	report := &cobra.Command{
		Use:   "report",
		Short: "Print strikes in flight at --tick and forget those that landed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEmpire(opts, func(emp *empire.Empire) error {
				lines := emp.StrikeReport(opts.Tick)
				if opts.Format == "json" {
					if lines == nil {
						lines = []string{}
					}
					return writeJSON(cmd.OutOrStdout(), lines)
				}
				for _, line := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(add, report)
	return cmd
}

// withEmpire runs fn over an empire built from the stored memory, then saves
// the memory back.
func withEmpire(opts *StrikeOptions, fn func(emp *empire.Empire) error) error {
	cfg, err := tuning.Load(opts.Tuning)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = tuning.Default(), nil
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load tuning", err)
	}

	return editMemory(opts.RootOptions, func(mem *empire.Memory) error {
		return fn(empire.New(mem, cfg, empire.Deps{}))
	})
}
