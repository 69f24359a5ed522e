package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
)

type accountStep int

const (
	stepType accountStep = iota
	stepCode
	stepName
	stepParent
	stepBalance
	stepConfirm
)

const accountSteps = int(stepConfirm) + 1

type accountCreatedMsg struct {
	account *ledger.Account
	err     error
}

// accountFormModel walks through creating an account one field at a time.
type accountFormModel struct {
	step       accountStep
	typeCursor int
	code       textinput.Model
	name       textinput.Model
	parent     textinput.Model
	balance    textinput.Model

	parentID      *int64
	openingAmount decimal.Decimal

	err       error
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newAccountForm() accountFormModel {
	codeInput := textinput.New()
	codeInput.Placeholder = "e.g. 1010"
	codeInput.CharLimit = 16

	nameInput := textinput.New()
	nameInput.Placeholder = "e.g. Petty Cash"
	nameInput.CharLimit = 60

	parentInput := textinput.New()
	parentInput.Placeholder = "optional parent account id"
	parentInput.CharLimit = 12

	balanceInput := textinput.New()
	balanceInput.Placeholder = "0.00"
	balanceInput.CharLimit = 20

	return accountFormModel{
		step:    stepType,
		code:    codeInput,
		name:    nameInput,
		parent:  parentInput,
		balance: balanceInput,
	}
}

func (m accountFormModel) account() *ledger.Account {
	return &ledger.Account{
		Code:     strings.TrimSpace(m.code.Value()),
		Name:     strings.TrimSpace(m.name.Value()),
		Type:     ledger.AllAccountTypes[m.typeCursor],
		ParentID: m.parentID,
		Balance:  m.openingAmount,
	}
}

func (m accountFormModel) update(msg tea.Msg, b Backend) (accountFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.step = stepConfirm
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("Account %s %s created", msg.account.Code, msg.account.Name)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			m.cancelled = true
			return m, nil
		}

		switch m.step {
		case stepType:
			return m.updateType(msg)
		case stepCode:
			cmd := m.updateText(msg, &m.code, stepName, func(v string) error {
				if strings.TrimSpace(v) == "" {
					return ledger.ErrEmptyAccountCode
				}
				return nil
			})
			return m, cmd
		case stepName:
			cmd := m.updateText(msg, &m.name, stepParent, func(v string) error {
				if strings.TrimSpace(v) == "" {
					return fmt.Errorf("account %w", ledger.ErrEmptyName)
				}
				return nil
			})
			return m, cmd
		case stepParent:
			cmd := m.updateText(msg, &m.parent, stepBalance, m.setParent)
			return m, cmd
		case stepBalance:
			cmd := m.updateText(msg, &m.balance, stepConfirm, m.setBalance)
			return m, cmd
		case stepConfirm:
			return m.updateConfirm(msg, b)
		}
	}
	return m, nil
}

func (m accountFormModel) updateType(msg tea.KeyMsg) (accountFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.typeCursor < len(ledger.AllAccountTypes)-1 {
			m.typeCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.step = stepCode
		cmd := m.code.Focus()
		return m, cmd
	}
	return m, nil
}

// updateText feeds a key to in and moves to next once enter is pressed and
// check accepts the value.
func (m *accountFormModel) updateText(msg tea.KeyMsg, in *textinput.Model, next accountStep, check func(string) error) tea.Cmd {
	if key.Matches(msg, keys.Enter) {
		if err := check(in.Value()); err != nil {
			m.err = err
			return nil
		}
		m.err = nil
		in.Blur()
		m.step = next
		switch next {
		case stepName:
			return m.name.Focus()
		case stepParent:
			return m.parent.Focus()
		case stepBalance:
			return m.balance.Focus()
		}
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (m *accountFormModel) setParent(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		m.parentID = nil
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("parent must be a positive account id")
	}
	m.parentID = &id
	return nil
}

func (m *accountFormModel) setBalance(v string) error {
	d, err := ledger.ParseAmount(v)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return fmt.Errorf("opening balance: %w", ledger.ErrNegativeAmount)
	}
	m.openingAmount = d
	return nil
}

func (m accountFormModel) updateConfirm(msg tea.KeyMsg, b Backend) (accountFormModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		acct := m.account()
		if err := acct.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		return m, func() tea.Msg {
			created, err := b.CreateAccount(context.Background(), acct)
			return accountCreatedMsg{account: created, err: err}
		}
	case "n", "N":
		m.cancelled = true
	}
	return m, nil
}

func (m *accountFormModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Account"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Step %d of %d", int(m.step)+1, accountSteps)))
	b.WriteString("\n\n")

	switch m.step {
	case stepType:
		b.WriteString("  Select account type:\n\n")
		for i, t := range ledger.AllAccountTypes {
			line := fmt.Sprintf("%-10s %s-normal", t, strings.ToLower(ledger.NormalBalance(t)))
			if i == m.typeCursor {
				b.WriteString(selectedStyle.Render("  > " + line))
			} else {
				b.WriteString("    " + line)
			}
			b.WriteString("\n")
		}
	case stepCode:
		b.WriteString("  Account code:\n\n  " + m.code.View() + "\n")
	case stepName:
		b.WriteString("  Account name:\n\n  " + m.name.View() + "\n")
	case stepParent:
		b.WriteString("  Parent account id (blank for top level):\n\n  " + m.parent.View() + "\n")
	case stepBalance:
		b.WriteString("  Opening balance:\n\n  " + m.balance.View() + "\n")
	case stepConfirm:
		a := m.account()
		parent := "-"
		if a.ParentID != nil {
			parent = strconv.FormatInt(*a.ParentID, 10)
		}
		b.WriteString(labelStyle.Render("  Type") + string(a.Type) + "\n")
		b.WriteString(labelStyle.Render("  Code") + a.Code + "\n")
		b.WriteString(labelStyle.Render("  Name") + a.Name + "\n")
		b.WriteString(labelStyle.Render("  Parent") + parent + "\n")
		b.WriteString(labelStyle.Render("  Balance") + ledger.FormatAmount(a.Balance) + "\n\n")
		b.WriteString("  Create this account? (y/n)\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("  enter:next  esc:cancel"))
	return b.String()
}
