package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	lines     []ledger.TransactionLine
	accounts  []ledger.Account
	entries   []ledger.JournalEntry
	drafts    []ledger.JournalDraft
	deleted   []int64
	lineCalls int

	employees      []ledger.Employee
	slipMonths     []string
	vendorInvoices []ledger.VendorInvoice
	salesInvoices  []ledger.SalesInvoice
	deletedSales   []int64
	deletedVendor  []int64
}

func (f *fakeBackend) TransactionLines(ctx context.Context) ([]ledger.TransactionLine, error) {
	f.lineCalls++
	return f.lines, nil
}

func (f *fakeBackend) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	return f.accounts, nil
}

func (f *fakeBackend) CreateAccount(ctx context.Context, acct *ledger.Account) (*ledger.Account, error) {
	created := *acct
	created.ID = int64(len(f.accounts) + 1)
	f.accounts = append(f.accounts, created)
	return &created, nil
}

func (f *fakeBackend) ListVendors(ctx context.Context) ([]ledger.Vendor, error) {
	return nil, nil
}

func (f *fakeBackend) CreateVendor(ctx context.Context, v *ledger.Vendor) (*ledger.Vendor, error) {
	created := *v
	created.ID = 1
	return &created, nil
}

func (f *fakeBackend) ListJournalEntries(ctx context.Context) ([]ledger.JournalEntry, error) {
	return f.entries, nil
}

func (f *fakeBackend) CreateJournalEntry(ctx context.Context, d *ledger.JournalDraft) (*ledger.JournalEntry, error) {
	f.drafts = append(f.drafts, *d)
	return &ledger.JournalEntry{ID: 77, Date: d.Date, Description: d.Description}, nil
}

func (f *fakeBackend) DeleteJournalEntry(ctx context.Context, id int64) error {
	if id == 404 {
		return errors.New("not found")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) TrialBalance(ctx context.Context) (*ledger.TrialBalance, error) {
	return ledger.NewTrialBalance([]ledger.TrialBalanceLine{
		{ID: 1, Name: "Cash", Debit: decimal.NewFromInt(100)},
		{ID: 2, Name: "Capital", Credit: decimal.NewFromInt(100)},
	}), nil
}

func (f *fakeBackend) IncomeStatement(ctx context.Context) (*ledger.IncomeStatement, error) {
	return &ledger.IncomeStatement{Revenues: decimal.NewFromInt(50), NetIncome: decimal.NewFromInt(50)}, nil
}

func (f *fakeBackend) BalanceSheet(ctx context.Context) (*ledger.BalanceSheet, error) {
	return &ledger.BalanceSheet{Assets: decimal.NewFromInt(100), Equity: decimal.NewFromInt(100)}, nil
}

func (f *fakeBackend) ListEmployees(ctx context.Context) ([]ledger.Employee, error) {
	return f.employees, nil
}

func (f *fakeBackend) SalarySlip(ctx context.Context, employeeID int64, month string) (*ledger.SalarySlip, error) {
	f.slipMonths = append(f.slipMonths, month)
	return &ledger.SalarySlip{
		EmployeeID:   employeeID,
		Month:        month,
		Base:         decimal.NewFromInt(2500),
		CostOfLiving: decimal.NewFromInt(1500),
		JobNature:    decimal.NewFromInt(1000),
		NetSalary:    decimal.NewFromInt(4900),
	}, nil
}

func (f *fakeBackend) ListVendorInvoices(ctx context.Context) ([]ledger.VendorInvoice, error) {
	return f.vendorInvoices, nil
}

func (f *fakeBackend) DeleteVendorInvoice(ctx context.Context, id int64) error {
	f.deletedVendor = append(f.deletedVendor, id)
	return nil
}

func (f *fakeBackend) ListSalesInvoices(ctx context.Context) ([]ledger.SalesInvoice, error) {
	return f.salesInvoices, nil
}

func (f *fakeBackend) DeleteSalesInvoice(ctx context.Context, id int64) error {
	f.deletedSales = append(f.deletedSales, id)
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func sampleLines() []ledger.TransactionLine {
	return []ledger.TransactionLine{
		{ID: 1, Date: "2024-01-03", EntryDesc: "Coffee", AccountName: "Cash", VendorName: "Bean Co", Credit: decimal.NewFromInt(30)},
		{ID: 2, Date: "2024-01-01", EntryDesc: "Opening", AccountName: "Cash", Debit: decimal.NewFromInt(100)},
		{ID: 3, Date: "2024-01-02", EntryDesc: "Milk", AccountName: "Supplies", VendorName: "Dairy", Debit: decimal.NewFromInt(8)},
		{ID: 4, Date: "", EntryDesc: "Broken", AccountName: "Cash", Debit: decimal.NewFromInt(1)},
	}
}

func loadedLedger(t *testing.T) (ledgerModel, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{lines: sampleLines()}
	m := newLedgerModel()
	cmd := m.init(fb)
	require.True(t, m.loading)
	m, _ = m.update(cmd())
	require.False(t, m.loading)
	return m, fb
}

func rowIDs(v ledger.View) []int64 {
	ids := make([]int64, 0, len(v.Rows))
	for _, r := range v.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestLedgerModelLoad(t *testing.T) {
	m, _ := loadedLedger(t)

	assert.Equal(t, []int64{2, 3, 1}, rowIDs(m.agg))
	assert.Len(t, m.agg.Skipped, 1)
	assert.Equal(t, []string{"Cash", "Supplies"}, m.accounts)
	assert.Equal(t, []string{ledger.UnknownVendor, "Bean Co", "Dairy"}, m.vendors)

	out := m.view()
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "1 skipped")
}

func TestLedgerModelFiltersLocally(t *testing.T) {
	m, fb := loadedLedger(t)

	m, _ = m.update(runes("/"))
	require.True(t, m.editing)

	m, _ = m.update(runes("Cash"))
	assert.Equal(t, "Cash", m.filter.AccountName)
	assert.Equal(t, []int64{2, 1}, rowIDs(m.agg))
	assert.Equal(t, "70", m.agg.Totals.FinalBalance.String())

	m, _ = m.update(tabKey)
	m, _ = m.update(tabKey)
	m, _ = m.update(runes("coffee"))
	assert.Equal(t, []int64{1}, rowIDs(m.agg))

	assert.Equal(t, 1, fb.lineCalls)

	m, _ = m.update(escKey)
	assert.False(t, m.editing)
	assert.Contains(t, m.view(), "account=Cash")
	assert.Contains(t, m.view(), "General Ledger (filtered)")

	m, _ = m.update(runes("c"))
	assert.False(t, m.filter.Active())
	assert.NotContains(t, m.view(), "(filtered)")
	assert.Len(t, m.agg.Rows, 3)
}

func TestLedgerModelPartialDateKeepsView(t *testing.T) {
	m, _ := loadedLedger(t)

	m, _ = m.update(runes("/"))
	for i := 0; i < fieldFrom; i++ {
		m, _ = m.update(tabKey)
	}
	m, _ = m.update(runes("2024-01-0"))
	assert.ErrorIs(t, m.filterErr, ledger.ErrInvalidDate)
	assert.Len(t, m.agg.Rows, 3)

	m, _ = m.update(runes("2"))
	assert.NoError(t, m.filterErr)
	assert.Equal(t, []int64{3, 1}, rowIDs(m.agg))

	// An inverted range is rejected the same way.
	m, _ = m.update(tabKey)
	m, _ = m.update(runes("2024-01-01"))
	assert.ErrorIs(t, m.filterErr, ledger.ErrInvalidDateRange)
	assert.Equal(t, []int64{3, 1}, rowIDs(m.agg))
}

func TestLedgerModelCyclesVendors(t *testing.T) {
	m, _ := loadedLedger(t)

	m, _ = m.update(runes("/"))
	m, _ = m.update(tabKey)
	require.Equal(t, fieldVendor, m.focus)

	m, _ = m.update(downKey)
	assert.Equal(t, ledger.UnknownVendor, m.filter.VendorName)
	assert.Equal(t, []int64{2}, rowIDs(m.agg))

	m, _ = m.update(downKey)
	assert.Equal(t, "Bean Co", m.filter.VendorName)
	assert.Equal(t, []int64{1}, rowIDs(m.agg))
}

func TestJournalEntryFlow(t *testing.T) {
	fb := &fakeBackend{accounts: []ledger.Account{
		{ID: 5, Code: "5000", Name: "Rent Expense", Type: ledger.TypeExpense},
		{ID: 1, Code: "1000", Name: "Cash", Type: ledger.TypeAsset},
	}}
	m := newJournalEntry(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	m, _ = m.update(m.loadAccounts(fb)(), fb)

	steps := []tea.KeyMsg{
		enterKey,       // date
		runes("Rent"),  // description
		enterKey,       //
		enterKey,       // account: Rent Expense
		enterKey,       // side: debit (normal side)
		runes("1,200"), // amount
		enterKey,       //
		enterKey,       // add another line
		downKey,        // account: Cash
		enterKey,       //
		downKey,        // side: credit
		enterKey,       //
		enterKey,       // amount pre-filled to balance
	}
	for _, k := range steps {
		m, _ = m.update(k, fb)
		require.NoError(t, m.err)
	}

	require.Equal(t, jeStepMore, m.step)
	require.Len(t, m.draft.Lines, 2)
	assert.True(t, m.draft.Difference().IsZero())
	assert.Equal(t, 1, m.moreCursor)
	assert.Contains(t, m.view(), "BALANCED")

	m, _ = m.update(enterKey, fb)
	require.Equal(t, jeStepConfirm, m.step)

	m, cmd := m.update(runes("y"), fb)
	require.NotNil(t, cmd)
	m, _ = m.update(cmd(), fb)
	assert.True(t, m.done)
	assert.Equal(t, "Journal entry 77 posted", m.statusMsg)

	require.Len(t, fb.drafts, 1)
	d := fb.drafts[0]
	assert.Equal(t, "2024-05-01", d.Date)
	assert.Equal(t, "Rent", d.Description)
	assert.Equal(t, int64(5), d.Lines[0].AccountID)
	assert.Equal(t, "1200", d.Lines[0].Debit.String())
	assert.Equal(t, int64(1), d.Lines[1].AccountID)
	assert.Equal(t, "1200", d.Lines[1].Credit.String())
}

func TestJournalEntryRejectsUnbalanced(t *testing.T) {
	fb := &fakeBackend{accounts: []ledger.Account{{ID: 1, Code: "1000", Name: "Cash", Type: ledger.TypeAsset}}}
	m := newJournalEntry(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	m, _ = m.update(m.loadAccounts(fb)(), fb)

	for _, k := range []tea.KeyMsg{enterKey, runes("Oops"), enterKey, enterKey, enterKey, runes("10"), enterKey} {
		m, _ = m.update(k, fb)
	}
	require.Equal(t, jeStepMore, m.step)

	m, _ = m.update(downKey, fb)
	m, _ = m.update(enterKey, fb)
	assert.ErrorIs(t, m.err, ledger.ErrTooFewLines)
	assert.Equal(t, jeStepMore, m.step)
	assert.Empty(t, fb.drafts)
}

func TestJournalEntryBadDate(t *testing.T) {
	m := newJournalEntry(time.Now())
	m.date.SetValue("2024-02-30")
	m, _ = m.update(enterKey, &fakeBackend{})
	assert.ErrorIs(t, m.err, ledger.ErrInvalidDate)
	assert.Equal(t, jeStepDate, m.step)
}

func TestAppTabsAndForms(t *testing.T) {
	fb := &fakeBackend{lines: sampleLines()}
	app := NewApp(fb, nil)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app.Update(linesLoadedMsg{lines: fb.lines})

	assert.Equal(t, modeLedger, app.mode)
	assert.Contains(t, app.View(), "General Ledger")

	_, cmd := app.Update(tabKey)
	assert.Equal(t, modeAccounts, app.mode)
	require.NotNil(t, cmd)

	app.Update(runes("n"))
	assert.Equal(t, modeAccountForm, app.mode)
	app.Update(escKey)
	assert.Equal(t, modeAccounts, app.mode)
	assert.Equal(t, "Account creation cancelled", app.statusMsg)

	for i := 0; i < 5; i++ {
		app.Update(tabKey)
	}
	assert.Equal(t, modeReports, app.mode)
	app.Update(trialBalanceLoadedMsg{tb: ledger.NewTrialBalance(nil)})
	assert.Contains(t, app.View(), "Trial Balance")

	app.Update(tabKey)
	assert.Equal(t, modeLedger, app.mode)
}

func TestAppFilterFormOwnsKeys(t *testing.T) {
	fb := &fakeBackend{lines: sampleLines()}
	app := NewApp(fb, nil)
	app.Update(linesLoadedMsg{lines: fb.lines})

	app.Update(runes("/"))
	app.Update(runes("q"))
	assert.Equal(t, "q", app.ledger.inputs[fieldAccount].Value())

	app.Update(tabKey)
	assert.Equal(t, modeLedger, app.mode)
	assert.Equal(t, fieldVendor, app.ledger.focus)
}

func TestAppDeleteJournalEntry(t *testing.T) {
	fb := &fakeBackend{entries: []ledger.JournalEntry{{ID: 9, Date: "2024-01-01", Description: "Typo"}}}
	app := NewApp(fb, nil)
	app.mode = modeJournal
	app.tabIndex = 3
	app.Update(entriesLoadedMsg{entries: fb.entries})

	app.Update(runes("d"))
	require.True(t, app.journal.confirmDelete)
	assert.Contains(t, app.View(), "Delete journal entry 9")

	_, cmd := app.Update(runes("y"))
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	assert.NotNil(t, cmd)

	assert.Equal(t, []int64{9}, fb.deleted)
	assert.Equal(t, "Journal entry 9 deleted", app.statusMsg)
}

func TestAccountFormCreatesAccount(t *testing.T) {
	fb := &fakeBackend{}
	m := newAccountForm()

	for _, k := range []tea.KeyMsg{
		downKey, enterKey, // Liability
		runes("2100"), enterKey,
		runes("Card Payable"), enterKey,
		enterKey, // no parent
		runes("250.5"), enterKey,
	} {
		m, _ = m.update(k, fb)
		require.NoError(t, m.err)
	}
	require.Equal(t, stepConfirm, m.step)
	assert.True(t, strings.Contains(m.view(), "Card Payable"))

	m, cmd := m.update(runes("y"), fb)
	require.NotNil(t, cmd)
	m, _ = m.update(cmd(), fb)
	assert.True(t, m.done)

	require.Len(t, fb.accounts, 1)
	a := fb.accounts[0]
	assert.Equal(t, ledger.TypeLiability, a.Type)
	assert.Equal(t, "2100", a.Code)
	assert.Nil(t, a.ParentID)
	assert.Equal(t, "250.5", a.Balance.String())
}

func TestAccountFormRejectsBadParent(t *testing.T) {
	m := newAccountForm()
	m.step = stepParent
	m.parent.Focus()
	m, _ = m.update(runes("abc"), &fakeBackend{})
	m, _ = m.update(enterKey, &fakeBackend{})
	assert.Error(t, m.err)
	assert.Equal(t, stepParent, m.step)
}

func TestAppEmployeeSalarySlip(t *testing.T) {
	fb := &fakeBackend{employees: []ledger.Employee{
		{ID: 2, Name: "Omar", Salary: decimal.NewFromInt(4000)},
		{ID: 1, Name: "Amal", Salary: decimal.NewFromInt(5000)},
	}}
	app := NewApp(fb, nil)
	app.now = func() time.Time { return time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC) }
	app.mode = modeEmployees
	app.tabIndex = 5
	app.Update(employeesLoadedMsg{employees: fb.employees})
	assert.Contains(t, app.View(), "Amal")

	_, cmd := app.Update(enterKey)
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, []string{"2024-05"}, fb.slipMonths)
	require.NotNil(t, app.employees.slip)
	assert.Equal(t, int64(1), app.employees.slip.EmployeeID)
	out := app.View()
	assert.Contains(t, out, "Salary slip 2024-05")
	assert.Contains(t, out, "(100.00)")

	app.Update(downKey)
	assert.Nil(t, app.employees.slip)
}

func TestAppDeleteSalesInvoice(t *testing.T) {
	je := int64(17)
	fb := &fakeBackend{
		vendorInvoices: []ledger.VendorInvoice{{ID: 3, VendorID: 2, VendorName: "Acme", Date: "2024-05-03", Total: decimal.NewFromInt(15),
			Lines: []ledger.VendorInvoiceLine{{ProductName: "Milk", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(3)}}}},
		salesInvoices: []ledger.SalesInvoice{{ID: 5, CustomerName: "Northwind", Date: "2024-05-04", Total: decimal.NewFromInt(200),
			DepartmentID: 1, JournalEntryID: &je,
			Items: []ledger.SalesInvoiceItem{{ProductID: 7, Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(100)}}}},
	}
	app := NewApp(fb, nil)
	app.mode = modeInvoices
	app.tabIndex = 4
	cmd := app.invoices.init(fb)
	assert.Contains(t, app.View(), "Loading invoices")
	for _, msg := range cmd().(tea.BatchMsg) {
		app.Update(msg())
	}
	out := app.View()
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Milk")

	app.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, salesInvoices, app.invoices.kind)
	assert.Contains(t, app.View(), "Northwind")

	app.Update(runes("d"))
	require.True(t, app.invoices.confirmDelete)
	assert.Contains(t, app.View(), "Delete sales invoice 5")

	_, cmd = app.Update(runes("y"))
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, []int64{5}, fb.deletedSales)
	assert.Empty(t, fb.deletedVendor)
	assert.Equal(t, "Deleted sales invoice 5", app.statusMsg)
}

func TestInvoiceConfirmOwnsKeys(t *testing.T) {
	fb := &fakeBackend{vendorInvoices: []ledger.VendorInvoice{{ID: 3, VendorID: 2, Date: "2024-05-03"}}}
	app := NewApp(fb, nil)
	app.mode = modeInvoices
	app.tabIndex = 4
	app.Update(vendorInvoicesLoadedMsg{invoices: fb.vendorInvoices})
	app.Update(salesInvoicesLoadedMsg{})

	app.Update(runes("d"))
	require.True(t, app.invoices.confirmDelete)
	_, cmd := app.Update(runes("q"))
	assert.Nil(t, cmd)
	assert.False(t, app.invoices.confirmDelete)
	assert.Empty(t, fb.deletedVendor)
}
