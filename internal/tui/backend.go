package tui

import (
	"context"

	"github.com/simonvc/erpview/internal/ledger"
)

// Backend is the ERP API surface the terminal UI uses. *client.Client
// implements it.
type Backend interface {
	TransactionLines(ctx context.Context) ([]ledger.TransactionLine, error)
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
	CreateAccount(ctx context.Context, acct *ledger.Account) (*ledger.Account, error)
	ListVendors(ctx context.Context) ([]ledger.Vendor, error)
	CreateVendor(ctx context.Context, v *ledger.Vendor) (*ledger.Vendor, error)
	ListJournalEntries(ctx context.Context) ([]ledger.JournalEntry, error)
	CreateJournalEntry(ctx context.Context, d *ledger.JournalDraft) (*ledger.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id int64) error
	TrialBalance(ctx context.Context) (*ledger.TrialBalance, error)
	IncomeStatement(ctx context.Context) (*ledger.IncomeStatement, error)
	BalanceSheet(ctx context.Context) (*ledger.BalanceSheet, error)
	ListEmployees(ctx context.Context) ([]ledger.Employee, error)
	SalarySlip(ctx context.Context, employeeID int64, month string) (*ledger.SalarySlip, error)
	ListVendorInvoices(ctx context.Context) ([]ledger.VendorInvoice, error)
	DeleteVendorInvoice(ctx context.Context, id int64) error
	ListSalesInvoices(ctx context.Context) ([]ledger.SalesInvoice, error)
	DeleteSalesInvoice(ctx context.Context, id int64) error
}
