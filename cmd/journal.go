package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List, post and delete journal entries",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := newClient(logger).ListJournalEntries(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No journal entries found.")
			return nil
		}

		ledger.SortNewestFirst(entries)
		fmt.Printf("%-8s %-12s %s\n", "ID", "DATE", "DESCRIPTION")
		fmt.Printf("%-8s %-12s %s\n", "--", "----", "-----------")
		for _, e := range entries {
			fmt.Printf("%-8d %-12s %s\n", e.ID, e.Date, e.Description)
		}
		return nil
	},
}

var (
	jeDate    string
	jeDesc    string
	jeDebits  []string
	jeCredits []string
)

var journalCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a balanced journal entry",
	Example: `  erpview journal create --desc "March rent" \
    --debit 12=1200 --credit 1=1200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := buildDraft(jeDate, jeDesc, jeDebits, jeCredits)
		if err != nil {
			return err
		}

		created, err := newClient(logger).CreateJournalEntry(cmd.Context(), draft)
		if err != nil {
			return err
		}

		debit, _ := draft.Totals()
		fmt.Printf("Journal entry %d posted: %s %s (%s)\n", created.ID, draft.Date, draft.Description, ledger.FormatAmount(debit))
		return nil
	},
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a journal entry and its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("journal entry", args[0])
		if err != nil {
			return err
		}
		return deleted("journal entry", id, newClient(logger).DeleteJournalEntry(cmd.Context(), id))
	},
}

// buildDraft assembles a draft from ACCOUNT_ID=AMOUNT arguments. An empty date
// means today.
func buildDraft(date, desc string, debits, credits []string) (*ledger.JournalDraft, error) {
	draft := &ledger.JournalDraft{Date: dateOrToday(date), Description: desc}

	for _, arg := range debits {
		id, amt, err := parseLineArg(arg)
		if err != nil {
			return nil, fmt.Errorf("--debit %s: %w", arg, err)
		}
		draft.Lines = append(draft.Lines, ledger.DraftLine{AccountID: id, Debit: amt})
	}
	for _, arg := range credits {
		id, amt, err := parseLineArg(arg)
		if err != nil {
			return nil, fmt.Errorf("--credit %s: %w", arg, err)
		}
		draft.Lines = append(draft.Lines, ledger.DraftLine{AccountID: id, Credit: amt})
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return draft, nil
}

func parseLineArg(arg string) (int64, decimal.Decimal, error) {
	acct, amount, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, decimal.Zero, fmt.Errorf("expected ACCOUNT_ID=AMOUNT")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(acct), 10, 64)
	if err != nil || id <= 0 {
		return 0, decimal.Zero, fmt.Errorf("%w: %q", ledger.ErrMissingAccount, acct)
	}
	amt, err := ledger.ParseAmount(amount)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return id, amt, nil
}

func init() {
	journalCreateCmd.Flags().StringVar(&jeDate, "date", "", "Entry date, YYYY-MM-DD (default today)")
	journalCreateCmd.Flags().StringVar(&jeDesc, "desc", "", "Entry description")
	journalCreateCmd.Flags().StringArrayVar(&jeDebits, "debit", nil, "Debit line as ACCOUNT_ID=AMOUNT (repeatable)")
	journalCreateCmd.Flags().StringArrayVar(&jeCredits, "credit", nil, "Credit line as ACCOUNT_ID=AMOUNT (repeatable)")
	journalCreateCmd.MarkFlagRequired("desc")

	journalCmd.AddCommand(journalListCmd, journalCreateCmd, journalDeleteCmd)
	rootCmd.AddCommand(journalCmd)
}
