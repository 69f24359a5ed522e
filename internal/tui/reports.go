package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
)

type trialBalanceLoadedMsg struct {
	tb  *ledger.TrialBalance
	err error
}

type incomeStatementLoadedMsg struct {
	is  *ledger.IncomeStatement
	err error
}

type balanceSheetLoadedMsg struct {
	bs  *ledger.BalanceSheet
	err error
}

// reportsModel shows the trial balance, income statement and balance sheet.
type reportsModel struct {
	tb     *ledger.TrialBalance
	is     *ledger.IncomeStatement
	bs     *ledger.BalanceSheet
	tbErr  error
	isErr  error
	bsErr  error
	width  int
	height int
}

func (m *reportsModel) init(b Backend) tea.Cmd {
	m.tb, m.is, m.bs = nil, nil, nil
	m.tbErr, m.isErr, m.bsErr = nil, nil, nil
	return tea.Batch(
		func() tea.Msg {
			tb, err := b.TrialBalance(context.Background())
			return trialBalanceLoadedMsg{tb: tb, err: err}
		},
		func() tea.Msg {
			is, err := b.IncomeStatement(context.Background())
			return incomeStatementLoadedMsg{is: is, err: err}
		},
		func() tea.Msg {
			bs, err := b.BalanceSheet(context.Background())
			return balanceSheetLoadedMsg{bs: bs, err: err}
		},
	)
}

func (m reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trialBalanceLoadedMsg:
		m.tb, m.tbErr = msg.tb, msg.err
	case incomeStatementLoadedMsg:
		m.is, m.isErr = msg.is, msg.err
	case balanceSheetLoadedMsg:
		m.bs, m.bsErr = msg.bs, msg.err
	}
	return m, nil
}

func amountRow(label string, d decimal.Decimal) string {
	return fmt.Sprintf("    %-28s %16s\n", label, ledger.FormatSigned(d))
}

func (m *reportsModel) trialBalanceView() string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render("Trial Balance") + "\n")
	switch {
	case m.tbErr != nil:
		b.WriteString(errorStyle.Render("    Error: "+m.tbErr.Error()) + "\n")
		return b.String()
	case m.tb == nil:
		b.WriteString(dimStyle.Render("    loading...") + "\n")
		return b.String()
	case len(m.tb.Lines) == 0:
		b.WriteString(dimStyle.Render("    (no accounts)") + "\n")
		return b.String()
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("    %-28s %14s %14s", "ACCOUNT", "DEBIT", "CREDIT")) + "\n")
	for _, l := range m.tb.Lines {
		b.WriteString(fmt.Sprintf("    %-28s %14s %14s\n", truncate(l.Name, 28), amountCell(l.Debit), amountCell(l.Credit)))
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf("    %-28s %14s %14s", "TOTAL",
		ledger.FormatAmount(m.tb.TotalDebit), ledger.FormatAmount(m.tb.TotalCredit))))
	b.WriteString("\n")
	if m.tb.Balanced {
		b.WriteString(successStyle.Render("    Debits equal credits") + "\n")
	} else {
		diff := m.tb.TotalDebit.Sub(m.tb.TotalCredit)
		b.WriteString(errorStyle.Render("    Out of balance by "+ledger.FormatSigned(diff)) + "\n")
	}
	return b.String()
}

func (m *reportsModel) incomeStatementView() string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render("Income Statement") + "\n")
	switch {
	case m.isErr != nil:
		b.WriteString(errorStyle.Render("    Error: "+m.isErr.Error()) + "\n")
	case m.is == nil:
		b.WriteString(dimStyle.Render("    loading...") + "\n")
	default:
		b.WriteString(amountRow("Revenues", m.is.Revenues))
		b.WriteString(amountRow("Expenses", m.is.Expenses))
		b.WriteString(totalStyle.Render(strings.TrimRight(amountRow("Net income", m.is.NetIncome), "\n")) + "\n")
	}
	return b.String()
}

func (m *reportsModel) balanceSheetView() string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render("Balance Sheet") + "\n")
	switch {
	case m.bsErr != nil:
		b.WriteString(errorStyle.Render("    Error: "+m.bsErr.Error()) + "\n")
	case m.bs == nil:
		b.WriteString(dimStyle.Render("    loading...") + "\n")
	default:
		b.WriteString(amountRow("Assets", m.bs.Assets))
		b.WriteString(amountRow("Liabilities", m.bs.Liabilities))
		b.WriteString(amountRow("Equity", m.bs.Equity))
		b.WriteString(totalStyle.Render(strings.TrimRight(amountRow("Liabilities + Equity", m.bs.Liabilities.Add(m.bs.Equity)), "\n")) + "\n")
		if !m.bs.Balanced() {
			b.WriteString(warnStyle.Render("    Difference "+ledger.FormatSigned(m.bs.Difference())+" (unclosed income)") + "\n")
		}
	}
	return b.String()
}

func (m *reportsModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Reports"))
	b.WriteString("\n")
	b.WriteString(m.trialBalanceView())
	b.WriteString("\n")
	b.WriteString(m.incomeStatementView())
	b.WriteString("\n")
	b.WriteString(m.balanceSheetView())
	return b.String()
}
