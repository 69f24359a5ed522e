package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Archive transaction lines for offline ledger views",
}

var snapshotLabel string

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Fetch every transaction line and store it as a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := newClient(logger).TransactionLines(cmd.Context())
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := st.SaveSnapshot(cmd.Context(), snapshotLabel, cfg.Server, lines)
		if err != nil {
			return err
		}
		logger.WithField("snapshot", snap.ID).WithField("lines", snap.LineCount).Info("Snapshot.Saved")
		fmt.Printf("Snapshot %s saved (%d lines)\n", snap.ID, snap.LineCount)
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		snaps, err := st.ListSnapshots(cmd.Context())
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots stored.")
			return nil
		}

		fmt.Printf("%-36s  %-24s %8s  %s\n", "ID", "LABEL", "LINES", "CREATED")
		fmt.Printf("%-36s  %-24s %8s  %s\n", "--", "-----", "-----", "-------")
		for _, s := range snaps {
			fmt.Printf("%-36s  %-24s %8d  %s\n", s.ID, clip(s.Label, 24), s.LineCount, humanize.Time(s.CreatedAt))
		}
		return nil
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a snapshot with its ledger totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := st.GetSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		lines, err := st.LoadSnapshot(cmd.Context(), snap.ID)
		if err != nil {
			return err
		}

		fmt.Printf("ID:       %s\n", snap.ID)
		fmt.Printf("Label:    %s\n", snap.Label)
		fmt.Printf("Source:   %s\n", snap.Source)
		fmt.Printf("Created:  %s (%s)\n", snap.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(snap.CreatedAt))
		fmt.Printf("Lines:    %d\n\n", snap.LineCount)

		view := ledger.Aggregate(lines, ledger.Filter{})
		printBalances(view)
		return nil
	},
}

// printBalances prints the closing balance of every account in the view.
func printBalances(view ledger.View) {
	balances := view.AccountBalances()
	fmt.Printf("%-30s %14s\n", "ACCOUNT", "BALANCE")
	fmt.Printf("%-30s %14s\n", "-------", "-------")
	for _, name := range accountOrder(view) {
		fmt.Printf("%-30s %14s\n", clip(name, 30), ledger.FormatSigned(balances[name]))
	}
	t := view.Totals
	fmt.Printf("\nDebits %s  Credits %s  Final balance %s\n",
		ledger.FormatAmount(t.TotalDebit), ledger.FormatAmount(t.TotalCredit), ledger.FormatSigned(t.FinalBalance))
	if n := len(view.Skipped); n > 0 {
		fmt.Printf("%d line(s) skipped: missing or invalid date\n", n)
	}
}

// accountOrder lists balance keys in first-seen order.
func accountOrder(view ledger.View) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range view.Rows {
		k := r.BalanceKey()
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteSnapshot(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Snapshot %s deleted\n", args[0])
		return nil
	},
}

func init() {
	snapshotSaveCmd.Flags().StringVar(&snapshotLabel, "label", "", "Label for the snapshot")
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotShowCmd, snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}
