package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/erpview/internal/ledger"
)

type jeStep int

const (
	jeStepDate jeStep = iota
	jeStepDescription
	jeStepAccount
	jeStepSide
	jeStepAmount
	jeStepMore
	jeStepConfirm
)

type accountsForJEMsg struct {
	accounts []ledger.Account
	err      error
}

type entryCreatedMsg struct {
	entry *ledger.JournalEntry
	err   error
}

// journalEntryModel composes a ledger.JournalDraft line by line and shows
// running debit and credit totals as lines are added.
type journalEntryModel struct {
	step        jeStep
	date        textinput.Model
	description textinput.Model
	amountInput textinput.Model
	draft       ledger.JournalDraft

	accounts   []ledger.Account
	acctCursor int
	isDebit    bool
	moreCursor int // 0 = add another, 1 = done

	err       error
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newJournalEntry(today time.Time) journalEntryModel {
	dateInput := textinput.New()
	dateInput.Placeholder = ledger.DateLayout
	dateInput.CharLimit = 10
	dateInput.SetValue(today.Format(ledger.DateLayout))
	dateInput.Focus()

	descInput := textinput.New()
	descInput.Placeholder = "e.g. Monthly rent"
	descInput.CharLimit = 120

	amtInput := textinput.New()
	amtInput.Placeholder = "e.g. 500.00"
	amtInput.CharLimit = 20

	return journalEntryModel{
		step:        jeStepDate,
		date:        dateInput,
		description: descInput,
		amountInput: amtInput,
		isDebit:     true,
	}
}

func (m *journalEntryModel) loadAccounts(b Backend) tea.Cmd {
	return func() tea.Msg {
		accounts, err := b.ListAccounts(context.Background())
		return accountsForJEMsg{accounts: accounts, err: err}
	}
}

func (m journalEntryModel) update(msg tea.Msg, b Backend) (journalEntryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsForJEMsg:
		m.accounts = msg.accounts
		if msg.err != nil {
			m.err = fmt.Errorf("load accounts: %w", msg.err)
		}
		return m, nil

	case entryCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.step = jeStepConfirm
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("Journal entry %d posted", msg.entry.ID)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			m.cancelled = true
			return m, nil
		}

		switch m.step {
		case jeStepDate:
			return m.updateDate(msg)
		case jeStepDescription:
			return m.updateDescription(msg)
		case jeStepAccount:
			return m.updateAccount(msg)
		case jeStepSide:
			return m.updateSide(msg)
		case jeStepAmount:
			return m.updateAmount(msg)
		case jeStepMore:
			return m.updateMore(msg)
		case jeStepConfirm:
			return m.updateConfirm(msg, b)
		}
	}
	return m, nil
}

func (m journalEntryModel) updateDate(msg tea.KeyMsg) (journalEntryModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		d, err := ledger.ParseDate(m.date.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.draft.Date = d.Format(ledger.DateLayout)
		m.date.Blur()
		m.step = jeStepDescription
		cmd := m.description.Focus()
		return m, cmd
	}
	var cmd tea.Cmd
	m.date, cmd = m.date.Update(msg)
	return m, cmd
}

func (m journalEntryModel) updateDescription(msg tea.KeyMsg) (journalEntryModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		desc := strings.TrimSpace(m.description.Value())
		if desc == "" {
			m.err = ledger.ErrEmptyDescription
			return m, nil
		}
		m.err = nil
		m.draft.Description = desc
		m.description.Blur()
		m.step = jeStepAccount
		return m, nil
	}
	var cmd tea.Cmd
	m.description, cmd = m.description.Update(msg)
	return m, cmd
}

func (m journalEntryModel) updateAccount(msg tea.KeyMsg) (journalEntryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.acctCursor > 0 {
			m.acctCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.acctCursor < len(m.accounts)-1 {
			m.acctCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.accounts) == 0 {
			m.err = ledger.ErrMissingAccount
			return m, nil
		}
		m.err = nil
		acct := m.accounts[m.acctCursor]
		m.isDebit = ledger.NormalBalance(acct.Type) == "Debit"
		m.step = jeStepSide
	}
	return m, nil
}

func (m journalEntryModel) updateSide(msg tea.KeyMsg) (journalEntryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		m.isDebit = !m.isDebit
	case key.Matches(msg, keys.Enter):
		m.err = nil
		m.step = jeStepAmount
		m.amountInput.SetValue(m.suggestedAmount())
		m.amountInput.CursorEnd()
		cmd := m.amountInput.Focus()
		return m, cmd
	}
	return m, nil
}

// suggestedAmount pre-fills the amount that would balance the draft when
// the chosen side is the one that is short.
func (m journalEntryModel) suggestedAmount() string {
	diff := m.draft.Difference()
	if (m.isDebit && diff.IsNegative()) || (!m.isDebit && diff.IsPositive()) {
		return diff.Abs().StringFixed(2)
	}
	return ""
}

func (m journalEntryModel) updateAmount(msg tea.KeyMsg) (journalEntryModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		amt, err := ledger.ParseAmount(m.amountInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		if !amt.IsPositive() {
			m.err = fmt.Errorf("%w: amount must be greater than zero", ledger.ErrInvalidAmount)
			return m, nil
		}
		line := ledger.DraftLine{AccountID: m.accounts[m.acctCursor].ID}
		if m.isDebit {
			line.Debit = amt
		} else {
			line.Credit = amt
		}
		m.draft.Lines = append(m.draft.Lines, line)
		m.err = nil
		m.amountInput.Blur()
		m.moreCursor = 0
		if len(m.draft.Lines) >= 2 && m.draft.Difference().IsZero() {
			m.moreCursor = 1
		}
		m.step = jeStepMore
		return m, nil
	}
	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

func (m journalEntryModel) updateMore(msg tea.KeyMsg) (journalEntryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		m.moreCursor = 1 - m.moreCursor
	case msg.String() == "backspace" || msg.String() == "x":
		if n := len(m.draft.Lines); n > 0 {
			m.draft.Lines = m.draft.Lines[:n-1]
		}
	case key.Matches(msg, keys.Enter):
		if m.moreCursor == 0 {
			m.step = jeStepAccount
			m.err = nil
			return m, nil
		}
		if err := m.draft.Validate(); err != nil {
			m.err = err
			m.moreCursor = 0
			return m, nil
		}
		m.err = nil
		m.step = jeStepConfirm
	}
	return m, nil
}

func (m journalEntryModel) updateConfirm(msg tea.KeyMsg, b Backend) (journalEntryModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		draft := m.draft
		draft.Lines = append([]ledger.DraftLine(nil), m.draft.Lines...)
		return m, func() tea.Msg {
			created, err := b.CreateJournalEntry(context.Background(), &draft)
			return entryCreatedMsg{entry: created, err: err}
		}
	case "n", "N":
		m.cancelled = true
	}
	return m, nil
}

func (m *journalEntryModel) accountLabel(id int64) string {
	for _, a := range m.accounts {
		if a.ID == id {
			return a.Code + " " + a.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

func (m *journalEntryModel) linesView() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("    %-4s %-32s %14s", "SIDE", "ACCOUNT", "AMOUNT")) + "\n")
	for _, l := range m.draft.Lines {
		if l.Debit.IsPositive() {
			b.WriteString(debitStyle.Render(fmt.Sprintf("    %-4s %-32s %14s", "DR", truncate(m.accountLabel(l.AccountID), 32), ledger.FormatAmount(l.Debit))))
		} else {
			b.WriteString(creditStyle.Render(fmt.Sprintf("    %-4s %-32s %14s", "CR", truncate(m.accountLabel(l.AccountID), 32), ledger.FormatAmount(l.Credit))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *journalEntryModel) totalsView() string {
	debit, credit := m.draft.Totals()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Debits:  %14s\n", ledger.FormatAmount(debit)))
	b.WriteString(fmt.Sprintf("  Credits: %14s\n", ledger.FormatAmount(credit)))

	diff := m.draft.Difference()
	switch {
	case diff.IsZero() && len(m.draft.Lines) >= 2:
		b.WriteString(successStyle.Render("  BALANCED"))
	case diff.IsPositive():
		b.WriteString(errorStyle.Render("  UNBALANCED: over-debited by " + ledger.FormatAmount(diff)))
	case diff.IsNegative():
		b.WriteString(errorStyle.Render("  UNBALANCED: over-credited by " + ledger.FormatAmount(diff.Neg())))
	default:
		b.WriteString(dimStyle.Render("  at least 2 lines needed"))
	}
	return b.String()
}

func (m *journalEntryModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Journal Entry"))
	b.WriteString("\n")
	if m.draft.Date != "" {
		b.WriteString(subtitleStyle.Render("  "+m.draft.Date+"  "+m.draft.Description) + "\n\n")
	}

	if len(m.draft.Lines) > 0 && m.step != jeStepConfirm {
		b.WriteString(m.linesView())
		b.WriteString("\n")
		b.WriteString(m.totalsView())
		b.WriteString("\n\n")
	}

	switch m.step {
	case jeStepDate:
		b.WriteString("  Entry date:\n\n")
		b.WriteString("  " + m.date.View() + "\n")

	case jeStepDescription:
		b.WriteString("  Description:\n\n")
		b.WriteString("  " + m.description.View() + "\n")

	case jeStepAccount:
		b.WriteString(fmt.Sprintf("  Line #%d: select account\n\n", len(m.draft.Lines)+1))
		if len(m.accounts) == 0 {
			b.WriteString(dimStyle.Render("    (no accounts loaded)") + "\n")
		}
		start := m.acctCursor - 5
		if start < 0 {
			start = 0
		}
		for i := start; i < len(m.accounts) && i < start+12; i++ {
			a := m.accounts[i]
			label := fmt.Sprintf("%-8s %-28s %s", truncate(a.Code, 8), truncate(a.Name, 28), a.Type)
			if i == m.acctCursor {
				b.WriteString(selectedStyle.Render("  > "+label) + "\n")
			} else {
				b.WriteString("    " + label + "\n")
			}
		}

	case jeStepSide:
		b.WriteString(fmt.Sprintf("  Account: %s\n", m.accountLabel(m.accounts[m.acctCursor].ID)))
		b.WriteString("  Debit or credit?\n\n")
		if m.isDebit {
			b.WriteString(selectedStyle.Render("  > Debit (DR)") + "\n")
			b.WriteString("    Credit (CR)\n")
		} else {
			b.WriteString("    Debit (DR)\n")
			b.WriteString(selectedStyle.Render("  > Credit (CR)") + "\n")
		}

	case jeStepAmount:
		side := "Debit"
		if !m.isDebit {
			side = "Credit"
		}
		b.WriteString(fmt.Sprintf("  Account: %s | %s\n", m.accountLabel(m.accounts[m.acctCursor].ID), side))
		b.WriteString("  Amount:\n\n")
		b.WriteString("  " + m.amountInput.View() + "\n")

	case jeStepMore:
		options := []string{"Add another line", "Done, review and post"}
		b.WriteString("  What next?\n\n")
		for i, opt := range options {
			if i == m.moreCursor {
				b.WriteString(selectedStyle.Render("  > "+opt) + "\n")
			} else {
				b.WriteString("    " + opt + "\n")
			}
		}
		b.WriteString("\n" + dimStyle.Render("  x: remove last line"))

	case jeStepConfirm:
		var summary strings.Builder
		summary.WriteString(labelStyle.Render("Date") + m.draft.Date + "\n")
		summary.WriteString(labelStyle.Render("Description") + m.draft.Description + "\n\n")
		summary.WriteString(m.linesView())
		summary.WriteString("\n")
		summary.WriteString(m.totalsView())
		b.WriteString(boxStyle.Render(summary.String()))
		b.WriteString("\n\n  Post this journal entry? (y/n)\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  esc to cancel"))
	return b.String()
}
