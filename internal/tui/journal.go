package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/erpview/internal/ledger"
)

type entriesLoadedMsg struct {
	entries []ledger.JournalEntry
	err     error
}

type entryDeleteConfirmedMsg struct {
	id int64
}

type entryDeletedMsg struct {
	id  int64
	err error
}

type journalListModel struct {
	entries       []ledger.JournalEntry
	cursor        int
	confirmDelete bool
	loading       bool
	err           error
	width         int
	height        int
}

func (m *journalListModel) init(b Backend) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		entries, err := b.ListJournalEntries(context.Background())
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m journalListModel) update(msg tea.Msg) (journalListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.entries = msg.entries
		ledger.SortNewestFirst(m.entries)
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}

	case entryDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
		}

	case tea.KeyMsg:
		if m.confirmDelete {
			switch msg.String() {
			case "y", "Y":
				m.confirmDelete = false
				if id := m.selectedID(); id != 0 {
					return m, func() tea.Msg { return entryDeleteConfirmedMsg{id: id} }
				}
			default:
				m.confirmDelete = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.entries)-1 {
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

func (m *journalListModel) selectedID() int64 {
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		return m.entries[m.cursor].ID
	}
	return 0
}

func (m *journalListModel) view() string {
	if m.loading {
		return "Loading journal entries..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Journal Entries"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}
	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("No journal entries. Press n to post one."))
		return b.String()
	}

	header := fmt.Sprintf("  %-8s %-12s %s", "ID", "DATE", "DESCRIPTION")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 7
	if maxRows < 1 {
		maxRows = 10
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	for i := start; i < len(m.entries) && i < start+maxRows; i++ {
		e := m.entries[i]
		line := fmt.Sprintf("  %-8d %-12s %s", e.ID, truncate(e.Date, 12), truncate(e.Description, 60))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.confirmDelete {
		b.WriteString("\n" + warnStyle.Render(fmt.Sprintf("  Delete journal entry %d and its lines? (y/n)", m.selectedID())))
	} else {
		b.WriteString(fmt.Sprintf("\n  %d entries", len(m.entries)))
	}
	return b.String()
}
