package cmd

import (
	"os"

	"github.com/simonvc/erpview/internal/logging"
	"github.com/simonvc/erpview/internal/server"
	"github.com/simonvc/erpview/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveNoStorage bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger view over HTTP",
	Long: "Serves /api/v1/ledger, which fetches transaction lines from the ERP backend " +
		"(or a stored snapshot) and returns filtered rows with running balances and totals. " +
		"Snapshot routes are available unless --no-snapshots is set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.Setup(cfg.LogLevel, true, os.Stderr)
		if err != nil {
			return err
		}

		addr := cfg.Listen
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		var snaps server.SnapshotStore
		if !serveNoStorage {
			st, err := store.Open(cfg.DB)
			if err != nil {
				return err
			}
			defer st.Close()
			snaps = st
		}

		srv := server.New(newClient(log), snaps, cfg.Server, log, addr, server.WithCORS(cfg.CORSOrigins))
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8890)")
	serveCmd.Flags().BoolVar(&serveNoStorage, "no-snapshots", false, "Disable the snapshot store")
	rootCmd.AddCommand(serveCmd)
}
