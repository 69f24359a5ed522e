package cmd

import (
	"fmt"

	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the chart of accounts",
}

// account create
var (
	acctCreateCode    string
	acctCreateName    string
	acctCreateType    string
	acctCreateParent  int64
	acctCreateBalance string
)

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := ledger.ParseAccountType(acctCreateType)
		if err != nil {
			return err
		}
		balance, err := ledger.ParseAmount(acctCreateBalance)
		if err != nil {
			return err
		}

		acct := &ledger.Account{
			Code:    acctCreateCode,
			Name:    acctCreateName,
			Type:    typ,
			Balance: balance,
		}
		if acctCreateParent > 0 {
			acct.ParentID = &acctCreateParent
		}

		created, err := newClient(logger).CreateAccount(cmd.Context(), acct)
		if err != nil {
			return err
		}

		fmt.Printf("Account created: %d %s (%s) [%s]\n", created.ID, created.Name, created.Code, created.Type)
		return nil
	},
}

// account list
var acctListType string

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var typ ledger.AccountType
		if acctListType != "" {
			t, err := ledger.ParseAccountType(acctListType)
			if err != nil {
				return err
			}
			typ = t
		}

		accounts, err := newClient(logger).ListAccounts(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-10s %-30s %-10s %14s\n", "ID", "CODE", "NAME", "TYPE", "BALANCE")
		fmt.Printf("%-6s %-10s %-30s %-10s %14s\n", "--", "----", "----", "----", "-------")
		n := 0
		for _, a := range accounts {
			if typ != "" && a.Type != typ {
				continue
			}
			fmt.Printf("%-6d %-10s %-30s %-10s %14s\n", a.ID, clip(a.Code, 10), clip(a.Name, 30), a.Type, ledger.FormatSigned(a.Balance))
			n++
		}
		if n == 0 {
			fmt.Println("No accounts found.")
		}
		return nil
	},
}

func init() {
	accountCreateCmd.Flags().StringVar(&acctCreateCode, "code", "", "Account code")
	accountCreateCmd.Flags().StringVar(&acctCreateName, "name", "", "Account name")
	accountCreateCmd.Flags().StringVar(&acctCreateType, "type", "", "Asset, Liability, Equity, Revenue or Expense")
	accountCreateCmd.Flags().Int64Var(&acctCreateParent, "parent", 0, "Parent account id")
	accountCreateCmd.Flags().StringVar(&acctCreateBalance, "balance", "", "Opening balance")
	accountCreateCmd.MarkFlagRequired("code")
	accountCreateCmd.MarkFlagRequired("name")
	accountCreateCmd.MarkFlagRequired("type")

	accountListCmd.Flags().StringVar(&acctListType, "type", "", "Filter by account type")

	accountCmd.AddCommand(accountCreateCmd, accountListCmd)
	rootCmd.AddCommand(accountCmd)
}
