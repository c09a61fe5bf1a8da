package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/mini-empire/internal/empire"
	"github.com/talgya/mini-empire/internal/tuning"
	"github.com/talgya/mini-empire/internal/world"
)

// NewAllyCommand creates the ally command and its subcommands.
func NewAllyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ally",
		Short: "Manage allied sites that take part in the terminal network",
	}

	cmd.AddCommand(newAllyAddCommand(rootOpts, "add-fort",
		"Remember allied fortress sites; they may receive any resource",
		(*empire.Empire).AddAllyForts))
	cmd.AddCommand(newAllyAddCommand(rootOpts, "add-swap",
		"Remember allied swap sites; they may receive energy",
		(*empire.Empire).AddAllySwaps))
	cmd.AddCommand(newAllyRemoveCommand(rootOpts))

	return cmd
}

func newAllyAddCommand(rootOpts *RootOptions, use, short string, add func(*empire.Empire, []string)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SITE...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateSites(args); err != nil {
				return err
			}
			return editMemory(rootOpts, func(mem *empire.Memory) error {
				before := len(mem.AllyForts) + len(mem.AllySwaps)
				add(empire.New(mem, tuning.Default(), empire.Deps{}), args)
				added := len(mem.AllyForts) + len(mem.AllySwaps) - before
				fmt.Fprintf(cmd.OutOrStdout(), "added %d site(s)\n", added)
				return nil
			})
		},
	}
}

func newAllyRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SITE...",
		Short: "Forget allied sites, fortress and swap alike",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editMemory(rootOpts, func(mem *empire.Memory) error {
				removed := 0
				for _, name := range args {
					var n int
					mem.AllyForts, n = without(mem.AllyForts, name)
					removed += n
					mem.AllySwaps, n = without(mem.AllySwaps, name)
					removed += n
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d entr(ies)\n", removed)
				return nil
			})
		},
	}
}

// editMemory loads memory, applies fn and saves the result.
func editMemory(rootOpts *RootOptions, fn func(mem *empire.Memory) error) error {
	db, err := openDB(rootOpts)
	if err != nil {
		return err
	}
	defer db.Close()

	mem, err := db.LoadMemory()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load memory", err)
	}
	if err := fn(mem); err != nil {
		return err
	}
	if err := db.SaveMemory(mem); err != nil {
		return WrapExitError(ExitCommandError, "failed to save memory", err)
	}
	return nil
}

func validateSites(names []string) error {
	for _, name := range names {
		if _, err := world.ParseName(name); err != nil {
			return WrapExitError(ExitCommandError, "invalid site name", err)
		}
	}
	return nil
}

func without(list []string, name string) ([]string, int) {
	out := list[:0]
	removed := 0
	for _, n := range list {
		if n == name {
			removed++
			continue
		}
		out = append(out, n)
	}
	return out, removed
}
