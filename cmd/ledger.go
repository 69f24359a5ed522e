package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var (
	ledgerAccount  string
	ledgerVendor   string
	ledgerSearch   string
	ledgerFrom     string
	ledgerTo       string
	ledgerSnapshot string
	ledgerJSON     bool
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the general ledger with running balances",
	Long: "Fetches every transaction line (or loads a stored snapshot), applies the filters " +
		"and prints the lines in date order with a running balance per account.\n\n" +
		"Use --vendor " + ledger.UnknownVendor + " to select lines without a vendor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := ledger.NewFilter(ledgerAccount, ledgerVendor, ledgerSearch, ledgerFrom, ledgerTo)
		if err != nil {
			return err
		}

		lines, err := fetchLines(cmd.Context(), ledgerSnapshot)
		if err != nil {
			return err
		}

		view := ledger.Aggregate(lines, f)
		for _, sk := range view.Skipped {
			logger.WithError(sk.Err).WithField("line", sk.Line.ID).Debug("Ledger.LineSkipped")
		}

		if ledgerJSON {
			return writeLedgerJSON(os.Stdout, view)
		}
		printLedger(os.Stdout, view, f.Active())
		return nil
	},
}

// fetchLines loads a stored snapshot when id is set, otherwise fetches
// from the backend.
func fetchLines(ctx context.Context, id string) ([]ledger.TransactionLine, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if id == "" {
		return newClient(logger).TransactionLines(ctx)
	}

	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.LoadSnapshot(ctx, id)
}

type skippedJSON struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func writeLedgerJSON(w io.Writer, view ledger.View) error {
	out := struct {
		Rows    []ledger.Row  `json:"rows"`
		Totals  ledger.Totals `json:"totals"`
		Skipped []skippedJSON `json:"skipped"`
	}{
		Rows:    view.Rows,
		Totals:  view.Totals,
		Skipped: []skippedJSON{},
	}
	for _, sk := range view.Skipped {
		out.Skipped = append(out.Skipped, skippedJSON{ID: sk.Line.ID, Date: sk.Line.Date, Reason: sk.Err.Error()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

const ledgerRowFmt = "%-10s %-20s %-16s %-30s %12s %12s %14s\n"

func printLedger(w io.Writer, view ledger.View, filtered bool) {
	if len(view.Rows) == 0 {
		fmt.Fprintln(w, "No transaction lines match.")
	} else {
		fmt.Fprintf(w, ledgerRowFmt, "DATE", "ACCOUNT", "VENDOR", "DESCRIPTION", "DEBIT", "CREDIT", "BALANCE")
		fmt.Fprintf(w, ledgerRowFmt, "----", "-------", "------", "-----------", "-----", "------", "-------")
		for _, r := range view.Rows {
			fmt.Fprintf(w, ledgerRowFmt,
				clip(r.Date, 10),
				clip(r.BalanceKey(), 20),
				clip(r.VendorDisplay(), 16),
				clip(r.EntryDesc, 30),
				blankZero(r.Debit),
				blankZero(r.Credit),
				ledger.FormatSigned(r.Balance),
			)
		}
		fmt.Fprintf(w, ledgerRowFmt, "", "", "", "", "-----", "------", "-------")
	}

	t := view.Totals
	label := "TOTAL"
	if filtered {
		label = "TOTAL (filtered)"
	}
	fmt.Fprintf(w, ledgerRowFmt, "", "", "", label,
		ledger.FormatAmount(t.TotalDebit),
		ledger.FormatAmount(t.TotalCredit),
		ledger.FormatSigned(t.FinalBalance),
	)
	if n := len(view.Skipped); n > 0 {
		fmt.Fprintf(w, "\n%d line(s) skipped: missing or invalid date\n", n)
	}
}

func init() {
	ledgerCmd.Flags().StringVar(&ledgerAccount, "account", "", "Only lines for this account name")
	ledgerCmd.Flags().StringVar(&ledgerVendor, "vendor", "", "Only lines for this vendor name")
	ledgerCmd.Flags().StringVarP(&ledgerSearch, "search", "s", "", "Case-insensitive text in description, account or vendor")
	ledgerCmd.Flags().StringVar(&ledgerFrom, "from", "", "First date to include (YYYY-MM-DD)")
	ledgerCmd.Flags().StringVar(&ledgerTo, "to", "", "Last date to include (YYYY-MM-DD)")
	ledgerCmd.Flags().StringVar(&ledgerSnapshot, "snapshot", "", "Read lines from a stored snapshot instead of the backend")
	ledgerCmd.Flags().BoolVar(&ledgerJSON, "json", false, "Print the view as JSON")
	rootCmd.AddCommand(ledgerCmd)
}
