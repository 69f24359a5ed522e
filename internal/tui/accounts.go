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

type accountsLoadedMsg struct {
	accounts []ledger.Account
	err      error
}

type accountListModel struct {
	accounts []ledger.Account
	cursor   int
	loading  bool
	err      error
	width    int
	height   int
}

func (m *accountListModel) init(b Backend) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		accounts, err := b.ListAccounts(context.Background())
		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

func (m accountListModel) update(msg tea.Msg) (accountListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.accounts = msg.accounts
		sort.SliceStable(m.accounts, func(i, j int) bool {
			return m.accounts[i].Code < m.accounts[j].Code
		})
		if m.cursor >= len(m.accounts) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.accounts)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *accountListModel) view() string {
	if m.loading {
		return "Loading accounts..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.accounts) == 0 {
		return dimStyle.Render("No accounts found. Press n to create one.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Chart of Accounts"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-8s %-32s %-10s %-7s %14s", "CODE", "NAME", "TYPE", "NORMAL", "BALANCE")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 6
	if maxRows < 1 {
		maxRows = 10
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.accounts) && i < start+maxRows; i++ {
		a := m.accounts[i]
		line := fmt.Sprintf("  %-8s %-32s %-10s %-7s %14s",
			truncate(a.Code, 8),
			truncate(a.Name, 32),
			a.Type,
			ledger.NormalBalance(a.Type),
			ledger.FormatSigned(a.Balance),
		)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d accounts", len(m.accounts)))
	return b.String()
}
