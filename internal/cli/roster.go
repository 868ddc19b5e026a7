package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/laxtime/internal/tracker"
)

func rosterCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show or edit the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()
			printRoster(cmd, t)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Append a placeholder player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			name := t.AddPlayer()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s\n", okMark, name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <n> <name>",
		Short: "Rename the player at position n",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			i, err := playerIndex(t, args[0])
			if err != nil {
				return err
			}
			old := t.Players()[i]
			name := strings.Join(args[1:], " ")
			if !t.RenamePlayer(i, name) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s unchanged\n", warnMark, old)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Renamed %s to %s\n", okMark, old, name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <n>",
		Short: "Remove the player at position n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			i, err := playerIndex(t, args[0])
			if err != nil {
				return err
			}
			name := t.Players()[i]
			if !t.RemovePlayer(i) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s The roster needs at least one player\n", warnMark)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", okMark, name)
			return nil
		},
	})

	return cmd
}

func printRoster(cmd *cobra.Command, t *tracker.Tracker) {
	for i, p := range t.Players() {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, p)
	}
}

// playerIndex converts a 1-based position to a roster index.
func playerIndex(t *tracker.Tracker, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("player number %q: %w", arg, err)
	}
	if n < 1 || n > len(t.Players()) {
		return 0, fmt.Errorf("%d: %w", n, ErrBadIndex)
	}
	return n - 1, nil
}
