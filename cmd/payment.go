package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "List, make and delete vendor payments",
}

var paymentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vendor payments with vendor names",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient(logger)
		payments, err := c.ListPayments(cmd.Context())
		if err != nil {
			return err
		}
		if len(payments) == 0 {
			fmt.Println("No payments found.")
			return nil
		}

		vendors, err := c.ListVendors(cmd.Context())
		if err != nil {
			return err
		}
		names := make(map[int64]string, len(vendors))
		for _, v := range vendors {
			names[v.ID] = v.Name
		}

		total := decimal.Zero
		fmt.Printf("%-6s %-12s %-24s %-16s %12s\n", "ID", "DATE", "VENDOR", "REFERENCE", "AMOUNT")
		fmt.Printf("%-6s %-12s %-24s %-16s %12s\n", "--", "----", "------", "---------", "------")
		for _, p := range payments {
			fmt.Printf("%-6d %-12s %-24s %-16s %12s\n", p.ID, p.Date, clip(nameOr(names, p.VendorID), 24), clip(p.Reference, 16), ledger.FormatAmount(p.Amount))
			total = total.Add(p.Amount)
		}
		fmt.Printf("%-6s %-12s %-24s %-16s %12s\n", "", "", "", "TOTAL", ledger.FormatAmount(total))
		return nil
	},
}

var (
	payVendor  int64
	payAccount int64
	payAmount  string
	payDate    string
	payRef     string
)

var paymentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Pay a vendor from a cash or bank account",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := ledger.ParseAmount(payAmount)
		if err != nil {
			return err
		}
		p := &ledger.Payment{
			VendorID:  payVendor,
			Date:      dateOrToday(payDate),
			Amount:    amount,
			AccountID: optionalID(payAccount),
			Reference: payRef,
		}
		created, err := newClient(logger).CreatePayment(cmd.Context(), p)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Payment %d posted: vendor %d, %s", created.ID, created.VendorID, ledger.FormatAmount(created.Amount))
		if created.JournalEntryID != nil {
			msg += fmt.Sprintf(" (journal entry %d)", *created.JournalEntryID)
		}
		fmt.Println(msg)
		return nil
	},
}

var paymentDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a payment and its journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("payment", args[0])
		if err != nil {
			return err
		}
		return deleted("payment", id, newClient(logger).DeletePayment(cmd.Context(), id))
	},
}

func init() {
	paymentCreateCmd.Flags().Int64Var(&payVendor, "vendor", 0, "Vendor ID")
	paymentCreateCmd.Flags().Int64Var(&payAccount, "account", 0, "Paying account ID")
	paymentCreateCmd.Flags().StringVar(&payAmount, "amount", "", "Amount")
	paymentCreateCmd.Flags().StringVar(&payDate, "date", "", "Payment date, YYYY-MM-DD (default today)")
	paymentCreateCmd.Flags().StringVar(&payRef, "ref", "", "Reference, e.g. a cheque number")
	paymentCreateCmd.MarkFlagRequired("vendor")
	paymentCreateCmd.MarkFlagRequired("account")
	paymentCreateCmd.MarkFlagRequired("amount")

	paymentCmd.AddCommand(paymentListCmd, paymentCreateCmd, paymentDeleteCmd)
	rootCmd.AddCommand(paymentCmd)
}
