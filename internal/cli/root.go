// Package cli wires the laxtime command line: the TUI plus a few
// non-interactive commands over the same tracker.
package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/laxtime/internal/config"
	"github.com/sadopc/laxtime/internal/logger"
	"github.com/sadopc/laxtime/internal/store"
	"github.com/sadopc/laxtime/internal/tracker"
	"github.com/sadopc/laxtime/internal/tui"
)

// Opener builds a tracker and returns a function that releases it.
type Opener func() (*tracker.Tracker, func(), error)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// Open loads configuration, starts logging and opens the SQLite store.
func Open() (*tracker.Tracker, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, logCloser, err := logger.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log, logCloser = logger.Discard(), io.NopCloser(nil)
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		logCloser.Close()
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	log.Info("store opened", "path", cfg.DBPath)

	t := tracker.Open(store.NewGateway(s),
		tracker.WithLogger(log),
		tracker.WithDefaultPlayers(cfg.Players),
		tracker.WithExportDir(cfg.ExportDir),
	)
	return t, func() {
		s.Close()
		logCloser.Close()
	}, nil
}

// RootCmd returns the laxtime command tree. Without a subcommand it runs the
// TUI.
func RootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "laxtime",
		Short: "Track player effort, presence and sportsmanship during practices and games",
		Long: `laxtime records +1/-1 marks per player and category during a practice
or game, keeps a history of finished sessions and exports them as CSV.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			p := tea.NewProgram(tui.NewApp(t), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	root.AddCommand(historyCmd(open))
	root.AddCommand(exportCmd(open))
	root.AddCommand(rosterCmd(open))
	return root
}
