package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/simonvc/erpview/internal/logging"
	"github.com/sirupsen/logrus"
)

type mode int

const (
	modeLedger mode = iota
	modeAccounts
	modeVendors
	modeJournal
	modeReports
	modeEmployees
	modeInvoices
	modeAccountForm
	modeVendorForm
	modeJournalEntry
)

var tabModes = []mode{modeLedger, modeAccounts, modeVendors, modeJournal, modeInvoices, modeEmployees, modeReports}

func tabLabel(m mode) string {
	switch m {
	case modeLedger:
		return "Ledger"
	case modeAccounts:
		return "Accounts"
	case modeVendors:
		return "Vendors"
	case modeJournal:
		return "Journal"
	case modeReports:
		return "Reports"
	case modeEmployees:
		return "Employees"
	case modeInvoices:
		return "Invoices"
	default:
		return ""
	}
}

func helpText(m mode) string {
	switch m {
	case modeLedger:
		return "tab:switch  /:filter  c:clear  up/down:scroll  r:refetch  q:quit"
	case modeAccounts, modeVendors:
		return "tab:switch  n:new  r:refresh  q:quit"
	case modeJournal:
		return "tab:switch  n:new entry  d:delete  r:refresh  q:quit"
	case modeEmployees:
		return "tab:switch  enter:salary slip  r:refresh  q:quit"
	case modeInvoices:
		return "tab:switch  left/right:vendor/sales  d:delete  r:refresh  q:quit"
	default:
		return "tab:switch  r:refresh  q:quit"
	}
}

type App struct {
	backend       Backend
	log           *logrus.Logger
	now           func() time.Time
	mode          mode
	tabIndex      int
	width, height int
	statusMsg     string

	ledger       ledgerModel
	accounts     accountListModel
	vendors      vendorListModel
	journal      journalListModel
	reports      reportsModel
	employees    employeeListModel
	invoices     invoiceListModel
	accountForm  accountFormModel
	vendorForm   vendorFormModel
	journalEntry journalEntryModel
}

// NewApp builds the terminal UI. log receives load and post failures; it
// must not write to the terminal the UI is drawn on.
func NewApp(b Backend, log *logrus.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		backend: b,
		log:     log,
		now:     time.Now,
		mode:    modeLedger,
		ledger:  newLedgerModel(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.ledger.init(a.backend),
		a.accounts.init(a.backend),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
		a.ledger.width, a.ledger.height = msg.Width, msg.Height-4
		a.accounts.width, a.accounts.height = msg.Width, msg.Height-6
		a.vendors.width, a.vendors.height = msg.Width, msg.Height-6
		a.journal.width, a.journal.height = msg.Width, msg.Height-6
		a.reports.width, a.reports.height = msg.Width, msg.Height-6
		a.employees.width, a.employees.height = msg.Width, msg.Height-6
		a.invoices.width, a.invoices.height = msg.Width, msg.Height-6
		a.accountForm.width = msg.Width
		a.journalEntry.width = msg.Width
		return a, nil
	}

	// Loaded messages go to their model whatever the active mode, since
	// loads started by Init may land after the user has switched tabs.
	switch typedMsg := msg.(type) {
	case linesLoadedMsg:
		a.logError("ledger", typedMsg.err)
		var cmd tea.Cmd
		a.ledger, cmd = a.ledger.update(msg)
		return a, cmd
	case accountsLoadedMsg:
		a.logError("accounts", typedMsg.err)
		var cmd tea.Cmd
		a.accounts, cmd = a.accounts.update(msg)
		return a, cmd
	case vendorsLoadedMsg:
		a.logError("vendors", typedMsg.err)
		var cmd tea.Cmd
		a.vendors, cmd = a.vendors.update(msg)
		return a, cmd
	case entriesLoadedMsg:
		a.logError("journal", typedMsg.err)
		var cmd tea.Cmd
		a.journal, cmd = a.journal.update(msg)
		return a, cmd
	case employeesLoadedMsg:
		a.logError("employees", typedMsg.err)
		var cmd tea.Cmd
		a.employees, cmd = a.employees.update(msg)
		return a, cmd
	case slipRequestedMsg:
		id, month := typedMsg.employeeID, a.now().Format(ledger.MonthLayout)
		return a, func() tea.Msg {
			slip, err := a.backend.SalarySlip(context.Background(), id, month)
			return slipLoadedMsg{slip: slip, err: err}
		}
	case slipLoadedMsg:
		a.logError("salary_slip", typedMsg.err)
		var cmd tea.Cmd
		a.employees, cmd = a.employees.update(msg)
		return a, cmd
	case vendorInvoicesLoadedMsg, salesInvoicesLoadedMsg:
		var cmd tea.Cmd
		a.invoices, cmd = a.invoices.update(msg)
		return a, cmd
	case invoiceDeleteConfirmedMsg:
		kind, id := typedMsg.kind, typedMsg.id
		return a, func() tea.Msg {
			var err error
			if kind == salesInvoices {
				err = a.backend.DeleteSalesInvoice(context.Background(), id)
			} else {
				err = a.backend.DeleteVendorInvoice(context.Background(), id)
			}
			return invoiceDeletedMsg{kind: kind, id: id, err: err}
		}
	case invoiceDeletedMsg:
		if typedMsg.err != nil {
			a.logError("delete_invoice", typedMsg.err)
			a.invoices, _ = a.invoices.update(msg)
			return a, nil
		}
		a.log.WithFields(logrus.Fields{"kind": typedMsg.kind.String(), "invoice": typedMsg.id}).Info("TUI.Invoice.Deleted")
		a.statusMsg = fmt.Sprintf("Deleted %s %d", typedMsg.kind, typedMsg.id)
		return a, tea.Batch(
			a.invoices.init(a.backend),
			a.ledger.init(a.backend),
		)
	case trialBalanceLoadedMsg, incomeStatementLoadedMsg, balanceSheetLoadedMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd
	case entryDeleteConfirmedMsg:
		id := typedMsg.id
		return a, func() tea.Msg {
			err := a.backend.DeleteJournalEntry(context.Background(), id)
			return entryDeletedMsg{id: id, err: err}
		}
	case entryDeletedMsg:
		if typedMsg.err != nil {
			a.logError("delete_entry", typedMsg.err)
			a.journal, _ = a.journal.update(msg)
			return a, nil
		}
		a.log.WithField("entry", typedMsg.id).Info("TUI.JournalEntry.Deleted")
		a.statusMsg = fmt.Sprintf("Journal entry %d deleted", typedMsg.id)
		return a, tea.Batch(
			a.journal.init(a.backend),
			a.ledger.init(a.backend),
		)
	}

	// Modal modes get every message, not just keys.
	switch a.mode {
	case modeAccountForm:
		var cmd tea.Cmd
		a.accountForm, cmd = a.accountForm.update(msg, a.backend)
		if a.accountForm.done {
			a.mode = modeAccounts
			a.statusMsg = a.accountForm.statusMsg
			return a, a.accounts.init(a.backend)
		}
		if a.accountForm.cancelled {
			a.mode = modeAccounts
			a.statusMsg = "Account creation cancelled"
		}
		return a, cmd

	case modeVendorForm:
		var cmd tea.Cmd
		a.vendorForm, cmd = a.vendorForm.update(msg, a.backend)
		if a.vendorForm.done {
			a.mode = modeVendors
			a.statusMsg = a.vendorForm.statusMsg
			return a, a.vendors.init(a.backend)
		}
		if a.vendorForm.cancelled {
			a.mode = modeVendors
			a.statusMsg = "Vendor creation cancelled"
		}
		return a, cmd

	case modeJournalEntry:
		var cmd tea.Cmd
		a.journalEntry, cmd = a.journalEntry.update(msg, a.backend)
		if a.journalEntry.done {
			a.mode = modeJournal
			a.statusMsg = a.journalEntry.statusMsg
			a.log.WithField("status", a.statusMsg).Info("TUI.JournalEntry.Posted")
			return a, tea.Batch(
				a.journal.init(a.backend),
				a.ledger.init(a.backend),
			)
		}
		if a.journalEntry.cancelled {
			a.mode = modeJournal
			a.statusMsg = "Journal entry cancelled"
		}
		return a, cmd
	}

	// Inline inputs own the keyboard while open.
	if (a.mode == modeLedger && a.ledger.editing) || (a.mode == modeJournal && a.journal.confirmDelete) ||
		(a.mode == modeInvoices && a.invoices.confirmDelete) {
		return a, a.delegate(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Tab):
			a.tabIndex = (a.tabIndex + 1) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, a.refreshTab()

		case key.Matches(msg, keys.ShiftTab):
			a.tabIndex = (a.tabIndex - 1 + len(tabModes)) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, a.refreshTab()

		case key.Matches(msg, keys.Refresh):
			a.statusMsg = ""
			if a.mode == modeLedger {
				return a, a.ledger.init(a.backend)
			}
			return a, a.refreshTab()

		case key.Matches(msg, keys.New):
			switch a.mode {
			case modeAccounts:
				a.mode = modeAccountForm
				a.accountForm = newAccountForm()
				a.accountForm.width = a.width
				return a, nil
			case modeVendors:
				a.mode = modeVendorForm
				a.vendorForm = newVendorForm()
				return a, nil
			case modeJournal:
				a.mode = modeJournalEntry
				a.journalEntry = newJournalEntry(a.now())
				a.journalEntry.width = a.width
				return a, a.journalEntry.loadAccounts(a.backend)
			}
		}
	}

	return a, a.delegate(msg)
}

func (a *App) delegate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.mode {
	case modeLedger:
		a.ledger, cmd = a.ledger.update(msg)
	case modeAccounts:
		a.accounts, cmd = a.accounts.update(msg)
	case modeVendors:
		a.vendors, cmd = a.vendors.update(msg)
	case modeJournal:
		a.journal, cmd = a.journal.update(msg)
	case modeReports:
		a.reports, cmd = a.reports.update(msg)
	case modeEmployees:
		a.employees, cmd = a.employees.update(msg)
	case modeInvoices:
		a.invoices, cmd = a.invoices.update(msg)
	}
	return cmd
}

// refreshTab reloads the active tab. The ledger keeps its fetched lines
// across tab switches; r refetches them explicitly.
func (a *App) refreshTab() tea.Cmd {
	switch a.mode {
	case modeAccounts:
		return a.accounts.init(a.backend)
	case modeVendors:
		return a.vendors.init(a.backend)
	case modeJournal:
		return a.journal.init(a.backend)
	case modeReports:
		return a.reports.init(a.backend)
	case modeEmployees:
		return a.employees.init(a.backend)
	case modeInvoices:
		return a.invoices.init(a.backend)
	}
	return nil
}

func (a *App) logError(view string, err error) {
	if err == nil {
		return
	}
	a.log.WithError(err).WithField("view", view).Warn("TUI.Load.Error")
}

func (a *App) View() string {
	modal := a.mode == modeAccountForm || a.mode == modeVendorForm || a.mode == modeJournalEntry

	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex && !modal {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}

	var content string
	switch a.mode {
	case modeLedger:
		content = a.ledger.view()
	case modeAccounts:
		content = a.accounts.view()
	case modeVendors:
		content = a.vendors.view()
	case modeJournal:
		content = a.journal.view()
	case modeReports:
		content = a.reports.view()
	case modeEmployees:
		content = a.employees.view()
	case modeInvoices:
		content = a.invoices.view()
	case modeAccountForm:
		content = a.accountForm.view()
	case modeVendorForm:
		content = a.vendorForm.view()
	case modeJournalEntry:
		content = a.journalEntry.view()
	}

	status := ""
	if a.statusMsg != "" {
		status = successStyle.Render(a.statusMsg)
	}

	help := ""
	if !modal {
		help = dimStyle.Render(helpText(a.mode))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		content,
		"",
		status,
		help,
	)
}
