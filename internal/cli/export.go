package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func exportCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Write a session, or the whole history, to the export directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			asJSON, _ := cmd.Flags().GetBool("json")
			if !all && len(args) == 0 {
				return ErrNoExportTarget
			}

			t, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			var path string
			switch {
			case all && asJSON:
				path, err = t.ExportArchiveJSON()
			case all:
				path, err = t.ExportArchive()
			default:
				path, err = t.ExportSession(args[0])
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported to %s\n", okMark, path)
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "export every finished session")
	cmd.Flags().Bool("json", false, "with --all, write a JSON backup instead of CSV")
	return cmd
}
