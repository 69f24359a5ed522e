package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
)

type linesLoadedMsg struct {
	lines []ledger.TransactionLine
	err   error
}

const (
	fieldAccount = iota
	fieldVendor
	fieldSearch
	fieldFrom
	fieldTo
	fieldCount
)

var fieldLabels = [fieldCount]string{"Account", "Vendor", "Search", "From", "To"}

// ledgerModel holds one fetched snapshot of transaction lines and re-runs
// the aggregation locally whenever the filter changes.
type ledgerModel struct {
	lines []ledger.TransactionLine
	agg   ledger.View

	filter    ledger.Filter
	inputs    [fieldCount]textinput.Model
	focus     int
	editing   bool
	filterErr error
	accounts  []string
	vendors   []string

	cursor  int
	loading bool
	err     error
	width   int
	height  int
}

func newLedgerModel() ledgerModel {
	var m ledgerModel
	placeholders := [fieldCount]string{"any account", "any vendor, — for none", "text in description, account or vendor", "YYYY-MM-DD", "YYYY-MM-DD"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 60
		in.Prompt = ""
		m.inputs[i] = in
	}
	m.inputs[fieldFrom].CharLimit = 10
	m.inputs[fieldTo].CharLimit = 10
	return m
}

func (m *ledgerModel) init(b Backend) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		lines, err := b.TransactionLines(context.Background())
		return linesLoadedMsg{lines: lines, err: err}
	}
}

func (m ledgerModel) update(msg tea.Msg) (ledgerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case linesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.lines = msg.lines
		m.accounts = ledger.DistinctAccounts(m.lines)
		m.vendors = append([]string{ledger.UnknownVendor}, ledger.DistinctVendors(m.lines)...)
		m.reaggregate()

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		switch {
		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, keys.PageUp):
			m.moveCursor(-m.pageSize())
		case key.Matches(msg, keys.PageDown):
			m.moveCursor(m.pageSize())
		case key.Matches(msg, keys.Filter):
			m.editing = true
			cmd := m.inputs[m.focus].Focus()
			return m, cmd
		case key.Matches(msg, keys.Clear):
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			m.applyFilter()
		}
	}
	return m, nil
}

// updateForm handles keys while the filter form is open. Arrow keys cycle
// known names in the account and vendor fields; everything else is typed.
func (m ledgerModel) updateForm(msg tea.KeyMsg) (ledgerModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.editing = false
		m.inputs[m.focus].Blur()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.inputs[m.focus].Blur()
		if msg.Type == tea.KeyTab {
			m.focus = (m.focus + 1) % fieldCount
		} else {
			m.focus = (m.focus + fieldCount - 1) % fieldCount
		}
		cmd := m.inputs[m.focus].Focus()
		return m, cmd
	case tea.KeyUp, tea.KeyDown:
		dir := 1
		if msg.Type == tea.KeyUp {
			dir = -1
		}
		switch m.focus {
		case fieldAccount:
			m.cycle(fieldAccount, m.accounts, dir)
		case fieldVendor:
			m.cycle(fieldVendor, m.vendors, dir)
		}
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *ledgerModel) cycle(field int, options []string, dir int) {
	if len(options) == 0 {
		return
	}
	cur := m.inputs[field].Value()
	idx := -1
	for i, o := range options {
		if o == cur {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && dir < 0:
		idx = len(options) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + dir + len(options)) % len(options)
	}
	m.inputs[field].SetValue(options[idx])
	m.inputs[field].CursorEnd()
}

// applyFilter rebuilds the filter from the form. An incomplete or invalid
// date keeps the last valid view on screen.
func (m *ledgerModel) applyFilter() {
	f, err := ledger.NewFilter(
		strings.TrimSpace(m.inputs[fieldAccount].Value()),
		strings.TrimSpace(m.inputs[fieldVendor].Value()),
		m.inputs[fieldSearch].Value(),
		m.inputs[fieldFrom].Value(),
		m.inputs[fieldTo].Value(),
	)
	if err != nil {
		m.filterErr = err
		return
	}
	m.filterErr = nil
	m.filter = f
	m.reaggregate()
}

func (m *ledgerModel) reaggregate() {
	m.agg = ledger.Aggregate(m.lines, m.filter)
	if m.cursor >= len(m.agg.Rows) {
		m.cursor = len(m.agg.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ledgerModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.agg.Rows) {
		m.cursor = len(m.agg.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ledgerModel) pageSize() int {
	n := m.height - 12
	if m.editing {
		n -= fieldCount + 2
	}
	if n < 5 {
		n = 5
	}
	return n
}

func (m *ledgerModel) filterSummary() string {
	var parts []string
	for i, in := range m.inputs {
		if v := in.Value(); v != "" {
			parts = append(parts, strings.ToLower(fieldLabels[i])+"="+v)
		}
	}
	if len(parts) == 0 {
		return dimStyle.Render("No filters. Press / to filter.")
	}
	return dimStyle.Render("Filters: "+strings.Join(parts, "  ")) + dimStyle.Render("   (c to clear)")
}

func (m *ledgerModel) formView() string {
	var b strings.Builder
	for i := range m.inputs {
		marker := "  "
		if i == m.focus {
			marker = selectedStyle.Render("> ")
		}
		b.WriteString(marker + labelStyle.Render(fieldLabels[i]) + m.inputs[i].View() + "\n")
	}
	b.WriteString(dimStyle.Render("tab:next field  up/down:cycle names  enter/esc:close"))
	return boxStyle.Render(b.String())
}

func (m *ledgerModel) view() string {
	if m.loading {
		return "Loading transaction lines..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n" + dimStyle.Render("Press r to retry.")
	}

	var b strings.Builder
	title := "General Ledger"
	if m.filter.Active() {
		title += " (filtered)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.formView())
	} else {
		b.WriteString(m.filterSummary())
	}
	b.WriteString("\n")
	if m.filterErr != nil {
		b.WriteString(warnStyle.Render("  " + m.filterErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	w := m.width
	if w < 100 {
		w = 100
	}
	descW := w - 2 - 10 - 18 - 14 - 13*3 - 6
	if descW > 50 {
		descW = 50
	}
	rowFmt := fmt.Sprintf("  %%-10s %%-18s %%-14s %%-%ds %%12s %%12s %%13s", descW)

	header := fmt.Sprintf(rowFmt, "DATE", "ACCOUNT", "VENDOR", "DESCRIPTION", "DEBIT", "CREDIT", "BALANCE")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(m.agg.Rows) == 0 {
		b.WriteString(dimStyle.Render("  No transaction lines match."))
		b.WriteString("\n")
	}

	maxRows := m.pageSize()
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	for i := start; i < len(m.agg.Rows) && i < start+maxRows; i++ {
		r := m.agg.Rows[i]
		line := fmt.Sprintf(rowFmt,
			truncate(r.Date, 10),
			truncate(r.BalanceKey(), 18),
			truncate(r.VendorDisplay(), 14),
			truncate(r.EntryDesc, descW),
			amountCell(r.Debit),
			amountCell(r.Credit),
			ledger.FormatSigned(r.Balance),
		)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	t := m.agg.Totals
	b.WriteString(totalStyle.Render(fmt.Sprintf(rowFmt, "", "", "", "TOTAL",
		ledger.FormatAmount(t.TotalDebit),
		ledger.FormatAmount(t.TotalCredit),
		ledger.FormatSigned(t.FinalBalance),
	)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("\n  %d of %d lines", len(m.agg.Rows), len(m.lines)-len(m.agg.Skipped)))
	if n := len(m.agg.Skipped); n > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("   %d skipped: missing or invalid date", n)))
	}
	return b.String()
}

// amountCell leaves zero debits and credits blank.
func amountCell(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return ledger.FormatAmount(d)
}
