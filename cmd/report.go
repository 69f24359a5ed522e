package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the backend's financial reports",
}

var reportTrialCmd = &cobra.Command{
	Use:   "trial",
	Short: "Trial balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		tb, err := newClient(logger).TrialBalance(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-30s %14s %14s\n", "ID", "ACCOUNT", "DEBIT", "CREDIT")
		fmt.Printf("%-6s %-30s %14s %14s\n", "--", "-------", "-----", "------")
		for _, l := range tb.Lines {
			fmt.Printf("%-6d %-30s %14s %14s\n", l.ID, clip(l.Name, 30), blankZero(l.Debit), blankZero(l.Credit))
		}
		fmt.Printf("%-6s %-30s %14s %14s\n", "", "TOTAL", ledger.FormatAmount(tb.TotalDebit), ledger.FormatAmount(tb.TotalCredit))
		if tb.Balanced {
			fmt.Println("\nBalanced")
		} else {
			fmt.Printf("\nOUT OF BALANCE by %s\n", ledger.FormatSigned(tb.TotalDebit.Sub(tb.TotalCredit)))
		}
		return nil
	},
}

var reportIncomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Income statement",
	RunE: func(cmd *cobra.Command, args []string) error {
		is, err := newClient(logger).IncomeStatement(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %14s\n", "Revenues", ledger.FormatAmount(is.Revenues))
		fmt.Printf("%-12s %14s\n", "Expenses", ledger.FormatAmount(is.Expenses))
		fmt.Printf("%-12s %14s\n", "", "--------------")
		fmt.Printf("%-12s %14s\n", "Net income", ledger.FormatSigned(is.NetIncome))
		return nil
	},
}

var reportBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Balance sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		bs, err := newClient(logger).BalanceSheet(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %14s\n", "Assets", ledger.FormatAmount(bs.Assets))
		fmt.Printf("%-12s %14s\n", "Liabilities", ledger.FormatAmount(bs.Liabilities))
		fmt.Printf("%-12s %14s\n", "Equity", ledger.FormatAmount(bs.Equity))
		if !bs.Balanced() {
			fmt.Printf("\nDifference %s (includes current-period income)\n", ledger.FormatSigned(bs.Difference()))
		}
		return nil
	},
}

var reportInventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Stock on hand per product",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := newClient(logger).InventoryReport(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%-6s %-30s %10s %10s %-10s %s\n", "ID", "PRODUCT", "ON HAND", "REORDER", "KIND", "")
		fmt.Printf("%-6s %-30s %10s %10s %-10s %s\n", "--", "-------", "-------", "-------", "----", "")
		for _, it := range items {
			kind, flag := "stock", ""
			if it.IsDailyConsumable {
				kind = "consumable"
			}
			if it.LowStockAlert {
				flag = "LOW"
			}
			fmt.Printf("%-6d %-30s %10s %10s %-10s %s\n", it.ProductID, clip(it.Name, 30),
				it.QuantityOnHand.String(), it.ReorderLevel.String(), kind, flag)
		}
		return nil
	},
}

var reportExpensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Expenses by account and month",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newClient(logger).ExpenseAnalysis(cmd.Context())
		if err != nil {
			return err
		}
		printExpenses(os.Stdout, e)
		return nil
	},
}

// printExpenses lists expense accounts largest first, each followed by its
// monthly amounts.
func printExpenses(w io.Writer, e *ledger.ExpenseAnalysis) {
	for _, acct := range e.Ranked() {
		fmt.Fprintf(w, "%-30s %14s\n", clip(acct.Account, 30), ledger.FormatAmount(acct.Total))
		for _, m := range acct.Months {
			fmt.Fprintf(w, "  %-28s %14s\n", m.Month, ledger.FormatAmount(m.Amount))
		}
	}
	fmt.Fprintf(w, "%-30s %14s\n", "", "--------------")
	fmt.Fprintf(w, "%-30s %14s\n", "Total expenses", ledger.FormatAmount(e.TotalExpenses))
}

func init() {
	reportCmd.AddCommand(reportTrialCmd, reportIncomeCmd, reportBalanceCmd, reportInventoryCmd, reportExpensesCmd)
	rootCmd.AddCommand(reportCmd)
}
