package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/simonvc/erpview/internal/logging"
	"github.com/simonvc/erpview/internal/tui"
	"github.com/spf13/cobra"
)

var tuiSnapshot string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closer, err := logging.SetupFile(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return err
		}
		defer closer.Close()

		c := newClient(log)
		if err := pingBackend(cmd.Context(), c); err != nil {
			return err
		}
		var backend tui.Backend = c
		if tuiSnapshot != "" {
			lines, err := fetchLines(cmd.Context(), tuiSnapshot)
			if err != nil {
				return err
			}
			backend = snapshotBackend{Backend: backend, lines: lines}
		}

		p := tea.NewProgram(tui.NewApp(backend, log), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// snapshotBackend serves a stored snapshot as the ledger's transaction
// lines. Everything else still goes to the live backend.
type snapshotBackend struct {
	tui.Backend
	lines []ledger.TransactionLine
}

func (b snapshotBackend) TransactionLines(context.Context) ([]ledger.TransactionLine, error) {
	return b.lines, nil
}

func init() {
	tuiCmd.Flags().StringVar(&tuiSnapshot, "snapshot", "", "Show a stored snapshot in the ledger view")
	rootCmd.AddCommand(tuiCmd)
}
