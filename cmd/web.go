package cmd

import (
	"fmt"
	"net"
	"strconv"

	"github.com/simonvc/erpview/internal/web"
	"github.com/spf13/cobra"
)

var (
	webPort int
	webHost string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the terminal UI in a browser",
	Long: "Each browser tab gets its own terminal UI process connected over a websocket. " +
		"The UI talks to the backend given by --server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := pingBackend(cmd.Context(), newClient(logger)); err != nil {
			return err
		}
		listenAddr := net.JoinHostPort(webHost, strconv.Itoa(webPort))

		srv, err := web.NewServer(listenAddr, cfg.Server, logger)
		if err != nil {
			return err
		}
		fmt.Printf("erpview web UI: http://%s\n", listenAddr)
		return srv.ListenAndServe()
	},
}

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 8833, "HTTP port for the web terminal")
	webCmd.Flags().StringVar(&webHost, "host", "localhost", "HTTP host for the web terminal")
	rootCmd.AddCommand(webCmd)
}
