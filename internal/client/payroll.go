package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/simonvc/erpview/internal/ledger"
)

func (c *Client) ListEmployees(ctx context.Context) ([]ledger.Employee, error) {
	var result []ledger.Employee
	if err := c.get(ctx, "/employees", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func employeeBody(e *ledger.Employee) map[string]any {
	return map[string]any{
		"name":           e.Name,
		"phone":          optString(e.Phone),
		"department_id":  e.DepartmentID,
		"job_title":      optString(e.JobTitle),
		"salary":         e.Salary,
		"payment_method": optString(e.PaymentMethod),
	}
}

func (c *Client) CreateEmployee(ctx context.Context, e *ledger.Employee) (*ledger.Employee, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	var result ledger.Employee
	if err := c.post(ctx, "/employees", employeeBody(e), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateEmployee replaces every field of employee id.
func (c *Client) UpdateEmployee(ctx context.Context, id int64, e *ledger.Employee) (*ledger.Employee, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	var result ledger.Employee
	if err := c.put(ctx, "/employees/"+strconv.FormatInt(id, 10), employeeBody(e), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.del(ctx, "/employees/"+strconv.FormatInt(id, 10))
}

func (c *Client) ListDepartments(ctx context.Context) ([]ledger.Department, error) {
	var result []ledger.Department
	if err := c.get(ctx, "/departments", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateDepartment(ctx context.Context, d *ledger.Department) (*ledger.Department, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":        d.Name,
		"description": optString(d.Description),
	}
	var result ledger.Department
	if err := c.post(ctx, "/departments", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteDepartment(ctx context.Context, id int64) error {
	return c.del(ctx, "/departments/"+strconv.FormatInt(id, 10))
}

func (c *Client) ListBonuses(ctx context.Context) ([]ledger.PayAdjustment, error) {
	return c.listAdjustments(ctx, "/bonuses")
}

func (c *Client) CreateBonus(ctx context.Context, a *ledger.PayAdjustment) (*ledger.PayAdjustment, error) {
	return c.createAdjustment(ctx, "/bonuses", a)
}

func (c *Client) DeleteBonus(ctx context.Context, id int64) error {
	return c.del(ctx, "/bonuses/"+strconv.FormatInt(id, 10))
}

func (c *Client) ListDeductions(ctx context.Context) ([]ledger.PayAdjustment, error) {
	return c.listAdjustments(ctx, "/deductions")
}

func (c *Client) CreateDeduction(ctx context.Context, a *ledger.PayAdjustment) (*ledger.PayAdjustment, error) {
	return c.createAdjustment(ctx, "/deductions", a)
}

func (c *Client) DeleteDeduction(ctx context.Context, id int64) error {
	return c.del(ctx, "/deductions/"+strconv.FormatInt(id, 10))
}

func (c *Client) listAdjustments(ctx context.Context, path string) ([]ledger.PayAdjustment, error) {
	var result []ledger.PayAdjustment
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) createAdjustment(ctx context.Context, path string, a *ledger.PayAdjustment) (*ledger.PayAdjustment, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	month, _ := ledger.ParseMonth(a.Month)
	body := map[string]any{
		"employee_id": a.EmployeeID,
		"month":       month,
		"amount":      a.Amount,
		"reason":      optString(a.Reason),
	}
	var result ledger.PayAdjustment
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SalarySlip fetches the slip the backend computes for an employee and a
// YYYY-MM month.
func (c *Client) SalarySlip(ctx context.Context, employeeID int64, month string) (*ledger.SalarySlip, error) {
	m, err := ledger.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	var result ledger.SalarySlip
	path := "/salary_slips/" + strconv.FormatInt(employeeID, 10) + "/" + url.PathEscape(m)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// optString sends blank optional text as null.
func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
