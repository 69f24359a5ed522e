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

type employeesLoadedMsg struct {
	employees []ledger.Employee
	err       error
}

type slipRequestedMsg struct {
	employeeID int64
}

type slipLoadedMsg struct {
	slip *ledger.SalarySlip
	err  error
}

type employeeListModel struct {
	employees []ledger.Employee
	cursor    int
	slip      *ledger.SalarySlip
	slipErr   error
	loading   bool
	err       error
	width     int
	height    int
}

func (m *employeeListModel) init(b Backend) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		emps, err := b.ListEmployees(context.Background())
		return employeesLoadedMsg{employees: emps, err: err}
	}
}

func (m employeeListModel) update(msg tea.Msg) (employeeListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case employeesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.employees = msg.employees
		sort.SliceStable(m.employees, func(i, j int) bool {
			return strings.ToLower(m.employees[i].Name) < strings.ToLower(m.employees[j].Name)
		})
		if m.cursor >= len(m.employees) {
			m.cursor = 0
		}
		m.dropStaleSlip()

	case slipLoadedMsg:
		m.slip, m.slipErr = msg.slip, msg.err

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.employees)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if id := m.selectedID(); id != 0 {
				m.slipErr = nil
				return m, func() tea.Msg { return slipRequestedMsg{employeeID: id} }
			}
		}
		m.dropStaleSlip()
	}
	return m, nil
}

// dropStaleSlip hides a slip that belongs to another employee than the
// selected one.
func (m *employeeListModel) dropStaleSlip() {
	if m.slip != nil && m.slip.EmployeeID != m.selectedID() {
		m.slip = nil
	}
}

func (m *employeeListModel) selectedID() int64 {
	if m.cursor >= 0 && m.cursor < len(m.employees) {
		return m.employees[m.cursor].ID
	}
	return 0
}

func (m *employeeListModel) view() string {
	if m.loading {
		return "Loading employees..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.employees) == 0 {
		return dimStyle.Render("No employees found. Add them with: erpview employee create")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Employees"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-6s %-26s %-20s %14s %14s", "ID", "NAME", "JOB TITLE", "SALARY", "NET")
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
	for i := start; i < len(m.employees) && i < start+maxRows; i++ {
		e := m.employees[i]
		line := fmt.Sprintf("  %-6d %-26s %-20s %14s %14s", e.ID, truncate(e.Name, 26), truncate(e.JobTitle, 20),
			ledger.FormatAmount(e.Salary), ledger.FormatAmount(e.NetSalary))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  %d employees\n", len(m.employees)))

	switch {
	case m.slipErr != nil:
		b.WriteString("\n" + errorStyle.Render("  Salary slip: "+m.slipErr.Error()))
	case m.slip != nil:
		b.WriteString("\n" + m.slipView())
	}
	return b.String()
}

func (m *employeeListModel) slipView() string {
	s := m.slip
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Salary slip %s", s.Month)))
	b.WriteString("\n")
	row := func(label string, amt string) {
		b.WriteString(labelStyle.Render("  "+label) + fmt.Sprintf("%14s\n", amt))
	}
	row("Base", ledger.FormatAmount(s.Base))
	row("Cost of living", ledger.FormatAmount(s.CostOfLiving))
	row("Job nature", ledger.FormatAmount(s.JobNature))
	row("Adjustments", ledger.FormatSigned(s.Adjustments()))
	row("Net salary", ledger.FormatSigned(s.NetSalary))
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
