package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/laxtime/internal/session"
)

func historyCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List finished sessions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			sessions := t.Sessions()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions recorded yet.")
				return nil
			}

			players := t.Players()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tPLAYERS\tID")
			for i := len(sessions) - 1; i >= 0; i-- {
				s := sessions[i]
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					s.Date.Local().Format("2006-01-02 15:04"),
					kindLabel(s.Type),
					len(session.ActivePlayers(s, players)),
					s.ID,
				)
			}
			return w.Flush()
		},
	}
}

func kindLabel(k session.Kind) string {
	if k == session.Game {
		return color.New(color.FgRed).Sprint(string(k))
	}
	return color.New(color.FgBlue).Sprint(string(k))
}
