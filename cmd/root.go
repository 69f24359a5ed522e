package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/simonvc/erpview/internal/client"
	"github.com/simonvc/erpview/internal/config"
	"github.com/simonvc/erpview/internal/logging"
	"github.com/simonvc/erpview/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagServer   string
	flagConfig   string
	flagDB       string
	flagLogLevel string
	flagEnvFile  string

	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "erpview",
	Short: "Ledger views and bookkeeping front-end for the ERP backend",
	Long: "erpview talks to the ERP backend's JSON API. It shows a filterable general ledger " +
		"with per-account running balances, manages accounts, vendors and journal entries, " +
		"and can archive ledger snapshots for offline use.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "ERP backend address (default http://127.0.0.1:8000)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "erpview.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Snapshot database path (default snapshots.db)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Dotenv file with ERPVIEW_* variables")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig layers defaults, the config file, environment and flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFile(flagEnvFile); err != nil {
		return err
	}
	c, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("server") {
		c.Server = flagServer
	}
	if cmd.Flags().Changed("db") {
		c.DB = flagDB
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	l, err := logging.Setup(c.LogLevel, false, os.Stderr)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

func newClient(log *logrus.Logger) *client.Client {
	return client.New(cfg.Server, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
}

// pingBackend fails fast when the backend is down, before a long-running
// front-end starts.
func pingBackend(ctx context.Context, c *client.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("ERP backend at %s is not reachable: %w", c.BaseURL(), err)
	}
	return nil
}

const pingTimeout = 5 * time.Second

func openStore() (*store.Store, error) {
	return store.Open(cfg.DB)
}

func Execute() error {
	return rootCmd.Execute()
}
