package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout is the payroll month format, e.g. "2024-05".
const MonthLayout = "2006-01"

type Department struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (d *Department) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("department %w", ErrEmptyName)
	}
	return nil
}

// Employee is a payroll record. Salary is the gross monthly input the
// backend splits into slip components.
type Employee struct {
	ID            int64           `json:"id,omitempty"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	DepartmentID  *int64          `json:"department_id,omitempty"`
	JobTitle      string          `json:"job_title,omitempty"`
	Salary        decimal.Decimal `json:"salary"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	NetSalary     decimal.Decimal `json:"net_salary"`
}

func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("employee %w", ErrEmptyName)
	}
	if e.Salary.IsNegative() {
		return fmt.Errorf("salary: %w", ErrNegativeAmount)
	}
	return nil
}

// PayAdjustment is a bonus or a deduction booked against one employee for
// one payroll month.
type PayAdjustment struct {
	ID         int64           `json:"id,omitempty"`
	EmployeeID int64           `json:"employee_id"`
	Month      string          `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason,omitempty"`
}

func (a *PayAdjustment) Validate() error {
	if a.EmployeeID <= 0 {
		return fmt.Errorf("employee %w", ErrMissingID)
	}
	if _, err := ParseMonth(a.Month); err != nil {
		return err
	}
	if !a.Amount.IsPositive() {
		return fmt.Errorf("amount %w", ErrNonPositive)
	}
	return nil
}

// SalarySlip is the backend's breakdown of one employee's pay for a month,
// bonuses and deductions included.
type SalarySlip struct {
	EmployeeID   int64           `json:"employee_id"`
	Month        string          `json:"month"`
	Base         decimal.Decimal `json:"base"`
	CostOfLiving decimal.Decimal `json:"cost_of_living"`
	JobNature    decimal.Decimal `json:"job_nature"`
	NetSalary    decimal.Decimal `json:"net_salary"`
}

// Gross is the sum of the salary components before bonuses and deductions.
func (s *SalarySlip) Gross() decimal.Decimal {
	return s.Base.Add(s.CostOfLiving).Add(s.JobNature)
}

// Adjustments is net salary minus gross: bonuses less deductions.
func (s *SalarySlip) Adjustments() decimal.Decimal {
	return s.NetSalary.Sub(s.Gross())
}

// ParseMonth validates a YYYY-MM month and returns it normalised.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t.Format(MonthLayout), nil
}

// SumAdjustments totals the adjustments for one employee and month.
func SumAdjustments(adj []PayAdjustment, employeeID int64, month string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range adj {
		if a.EmployeeID == employeeID && a.Month == month {
			total = total.Add(a.Amount)
		}
	}
	return total
}
