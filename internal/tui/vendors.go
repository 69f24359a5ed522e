package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/erpview/internal/ledger"
)

type vendorsLoadedMsg struct {
	vendors []ledger.Vendor
	err     error
}

type vendorCreatedMsg struct {
	vendor *ledger.Vendor
	err    error
}

type vendorListModel struct {
	vendors []ledger.Vendor
	cursor  int
	loading bool
	err     error
	width   int
	height  int
}

func (m *vendorListModel) init(b Backend) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		vendors, err := b.ListVendors(context.Background())
		return vendorsLoadedMsg{vendors: vendors, err: err}
	}
}

func (m vendorListModel) update(msg tea.Msg) (vendorListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case vendorsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.vendors = msg.vendors
		sort.SliceStable(m.vendors, func(i, j int) bool {
			return strings.ToLower(m.vendors[i].Name) < strings.ToLower(m.vendors[j].Name)
		})
		if m.cursor >= len(m.vendors) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.vendors)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *vendorListModel) view() string {
	if m.loading {
		return "Loading vendors..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.vendors) == 0 {
		return dimStyle.Render("No vendors found. Press n to add one.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Vendors"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-6s %-32s %s", "ID", "NAME", "CONTACT")
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
	for i := start; i < len(m.vendors) && i < start+maxRows; i++ {
		v := m.vendors[i]
		line := fmt.Sprintf("  %-6d %-32s %s", v.ID, truncate(v.Name, 32), truncate(v.Contact, 40))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d vendors", len(m.vendors)))
	return b.String()
}

// vendorFormModel is a two-field form; tab moves between fields and enter
// on the last field submits.
type vendorFormModel struct {
	name    textinput.Model
	contact textinput.Model
	focus   int

	err       error
	done      bool
	cancelled bool
	statusMsg string
}

func newVendorForm() vendorFormModel {
	name := textinput.New()
	name.Placeholder = "e.g. Bean Co"
	name.CharLimit = 60
	name.Focus()

	contact := textinput.New()
	contact.Placeholder = "phone or email (optional)"
	contact.CharLimit = 80

	return vendorFormModel{name: name, contact: contact}
}

func (m vendorFormModel) update(msg tea.Msg, b Backend) (vendorFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case vendorCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("Vendor %s created", msg.vendor.Name)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			m.cancelled = true
			return m, nil
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			cmd := m.toggleFocus()
			return m, cmd
		case tea.KeyEnter:
			if m.focus == 0 {
				cmd := m.toggleFocus()
				return m, cmd
			}
			v := &ledger.Vendor{
				Name:    strings.TrimSpace(m.name.Value()),
				Contact: strings.TrimSpace(m.contact.Value()),
			}
			if err := v.Validate(); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg {
				created, err := b.CreateVendor(context.Background(), v)
				return vendorCreatedMsg{vendor: created, err: err}
			}
		}

		var cmd tea.Cmd
		if m.focus == 0 {
			m.name, cmd = m.name.Update(msg)
		} else {
			m.contact, cmd = m.contact.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *vendorFormModel) toggleFocus() tea.Cmd {
	if m.focus == 0 {
		m.focus = 1
		m.name.Blur()
		return m.contact.Focus()
	}
	m.focus = 0
	m.contact.Blur()
	return m.name.Focus()
}

func (m *vendorFormModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New Vendor"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("  Name") + m.name.View() + "\n")
	b.WriteString(labelStyle.Render("  Contact") + m.contact.View() + "\n")
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("  tab:next field  enter:save  esc:cancel"))
	return b.String()
}
