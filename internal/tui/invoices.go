package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/erpview/internal/ledger"
)

type invoiceKind int

const (
	vendorInvoices invoiceKind = iota
	salesInvoices
)

func (k invoiceKind) String() string {
	if k == salesInvoices {
		return "sales invoice"
	}
	return "vendor invoice"
}

type vendorInvoicesLoadedMsg struct {
	invoices []ledger.VendorInvoice
	err      error
}

type salesInvoicesLoadedMsg struct {
	invoices []ledger.SalesInvoice
	err      error
}

type invoiceDeleteConfirmedMsg struct {
	kind invoiceKind
	id   int64
}

type invoiceDeletedMsg struct {
	kind invoiceKind
	id   int64
	err  error
}

// invoiceListModel shows vendor or sales invoices, one list at a time, with
// the selected invoice's lines underneath.
type invoiceListModel struct {
	kind          invoiceKind
	vendor        []ledger.VendorInvoice
	sales         []ledger.SalesInvoice
	cursor        int
	confirmDelete bool
	pending       int
	err           error
	width         int
	height        int
}

func (m *invoiceListModel) init(b Backend) tea.Cmd {
	m.pending = 2
	return tea.Batch(
		func() tea.Msg {
			invs, err := b.ListVendorInvoices(context.Background())
			return vendorInvoicesLoadedMsg{invoices: invs, err: err}
		},
		func() tea.Msg {
			invs, err := b.ListSalesInvoices(context.Background())
			return salesInvoicesLoadedMsg{invoices: invs, err: err}
		},
	)
}

func (m invoiceListModel) update(msg tea.Msg) (invoiceListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case vendorInvoicesLoadedMsg:
		m.loaded(msg.err)
		m.vendor = msg.invoices
		sort.SliceStable(m.vendor, func(i, j int) bool { return m.vendor[i].Date > m.vendor[j].Date })
		m.clampCursor()

	case salesInvoicesLoadedMsg:
		m.loaded(msg.err)
		m.sales = msg.invoices
		sort.SliceStable(m.sales, func(i, j int) bool { return m.sales[i].Date > m.sales[j].Date })
		m.clampCursor()

	case invoiceDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
		}

	case tea.KeyMsg:
		if m.confirmDelete {
			m.confirmDelete = false
			if s := msg.String(); s == "y" || s == "Y" {
				if id := m.selectedID(); id != 0 {
					kind := m.kind
					return m, func() tea.Msg { return invoiceDeleteConfirmedMsg{kind: kind, id: id} }
				}
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Switch):
			if m.kind == vendorInvoices {
				m.kind = salesInvoices
			} else {
				m.kind = vendorInvoices
			}
			m.cursor = 0
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < m.count()-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if m.selectedID() != 0 {
				m.err = nil
				m.confirmDelete = true
			}
		}
	}
	return m, nil
}

func (m *invoiceListModel) loaded(err error) {
	if m.pending > 0 {
		m.pending--
	}
	if err != nil {
		m.err = err
	}
}

func (m *invoiceListModel) count() int {
	if m.kind == salesInvoices {
		return len(m.sales)
	}
	return len(m.vendor)
}

func (m *invoiceListModel) clampCursor() {
	if m.cursor >= m.count() {
		m.cursor = 0
	}
}

func (m *invoiceListModel) selectedID() int64 {
	if m.cursor < 0 || m.cursor >= m.count() {
		return 0
	}
	if m.kind == salesInvoices {
		return m.sales[m.cursor].ID
	}
	return m.vendor[m.cursor].ID
}

func (m *invoiceListModel) view() string {
	if m.pending > 0 {
		return "Loading invoices..."
	}

	var b strings.Builder
	vendorTab, salesTab := "Vendor invoices", "Sales invoices"
	if m.kind == vendorInvoices {
		b.WriteString(titleStyle.Render(vendorTab) + "  " + dimStyle.Render(salesTab))
	} else {
		b.WriteString(dimStyle.Render(vendorTab) + "  " + titleStyle.Render(salesTab))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}
	if m.count() == 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("No %ss found.", m.kind)))
		return b.String()
	}

	var rows []string
	var header string
	if m.kind == vendorInvoices {
		header = fmt.Sprintf("  %-6s %-12s %-26s %-18s %14s", "ID", "DATE", "VENDOR", "DEPARTMENT", "TOTAL")
		for _, inv := range m.vendor {
			name := inv.VendorName
			if name == "" {
				name = fmt.Sprintf("#%d", inv.VendorID)
			}
			rows = append(rows, fmt.Sprintf("  %-6d %-12s %-26s %-18s %14s", inv.ID, truncate(inv.Date, 12),
				truncate(name, 26), truncate(inv.DepartmentName, 18), ledger.FormatAmount(inv.Total)))
		}
	} else {
		header = fmt.Sprintf("  %-6s %-12s %-26s %-18s %14s", "ID", "DATE", "CUSTOMER", "JOURNAL", "TOTAL")
		for _, inv := range m.sales {
			je := ""
			if inv.JournalEntryID != nil {
				je = fmt.Sprintf("%d", *inv.JournalEntryID)
			}
			rows = append(rows, fmt.Sprintf("  %-6d %-12s %-26s %-18s %14s", inv.ID, truncate(inv.Date, 12),
				truncate(inv.CustomerName, 26), je, ledger.FormatAmount(inv.Total)))
		}
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 14
	if maxRows < 1 {
		maxRows = 8
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	for i := start; i < len(rows) && i < start+maxRows; i++ {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + rows[i][2:]))
		} else {
			b.WriteString(rows[i])
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.detailView())
	if m.confirmDelete {
		b.WriteString("\n" + warnStyle.Render(fmt.Sprintf("  Delete %s %d and its journal entry? (y/n)", m.kind, m.selectedID())))
	}
	return b.String()
}

func (m *invoiceListModel) detailView() string {
	var b strings.Builder
	if m.kind == vendorInvoices {
		inv := m.vendor[m.cursor]
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-28s %10s %12s %14s", "PRODUCT", "QTY", "UNIT PRICE", "SUBTOTAL")))
		b.WriteString("\n")
		for _, l := range inv.Lines {
			b.WriteString(fmt.Sprintf("  %-28s %10s %12s %14s\n", truncate(l.ProductName, 28), l.Quantity.String(),
				ledger.FormatAmount(l.UnitPrice), ledger.FormatAmount(l.Amount())))
		}
	} else {
		inv := m.sales[m.cursor]
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-28s %10s %12s %14s", "PRODUCT", "QTY", "PRICE", "AMOUNT")))
		b.WriteString("\n")
		for _, it := range inv.Items {
			b.WriteString(fmt.Sprintf("  %-28s %10s %12s %14s\n", fmt.Sprintf("#%d", it.ProductID), it.Quantity.String(),
				ledger.FormatAmount(it.Price), ledger.FormatAmount(it.Amount())))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
