package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/client"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Manage employees and view salary slips",
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees with their departments",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient(logger)
		emps, err := c.ListEmployees(cmd.Context())
		if err != nil {
			return err
		}
		if len(emps) == 0 {
			fmt.Println("No employees found.")
			return nil
		}
		depts, err := departmentNames(cmd.Context(), c)
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-24s %-18s %-18s %12s %12s\n", "ID", "NAME", "DEPARTMENT", "JOB TITLE", "SALARY", "NET")
		fmt.Printf("%-6s %-24s %-18s %-18s %12s %12s\n", "--", "----", "----------", "---------", "------", "---")
		for _, e := range emps {
			dept := ""
			if e.DepartmentID != nil {
				dept = nameOr(depts, *e.DepartmentID)
			}
			fmt.Printf("%-6d %-24s %-18s %-18s %12s %12s\n", e.ID, clip(e.Name, 24), clip(dept, 18),
				clip(e.JobTitle, 18), ledger.FormatAmount(e.Salary), ledger.FormatAmount(e.NetSalary))
		}
		return nil
	},
}

var (
	empName    string
	empPhone   string
	empDept    int64
	empJob     string
	empSalary  string
	empPayment string
)

var employeeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		salary, err := ledger.ParseAmount(empSalary)
		if err != nil {
			return err
		}
		e := &ledger.Employee{
			Name:          empName,
			Phone:         empPhone,
			DepartmentID:  optionalID(empDept),
			JobTitle:      empJob,
			Salary:        salary,
			PaymentMethod: empPayment,
		}
		created, err := newClient(logger).CreateEmployee(cmd.Context(), e)
		if err != nil {
			return err
		}
		fmt.Printf("Employee %d created: %s (%s)\n", created.ID, created.Name, ledger.FormatAmount(created.Salary))
		return nil
	},
}

var employeeUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change an employee's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("employee", args[0])
		if err != nil {
			return err
		}
		c := newClient(logger)
		emps, err := c.ListEmployees(cmd.Context())
		if err != nil {
			return err
		}
		var current *ledger.Employee
		for i := range emps {
			if emps[i].ID == id {
				current = &emps[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("employee %d not found", id)
		}
		if err := applyEmployeeFlags(cmd, current); err != nil {
			return err
		}
		updated, err := c.UpdateEmployee(cmd.Context(), id, current)
		if err != nil {
			return err
		}
		fmt.Printf("Employee %d updated: %s (%s)\n", updated.ID, updated.Name, ledger.FormatAmount(updated.Salary))
		return nil
	},
}

// applyEmployeeFlags overwrites only the fields whose flags were given.
func applyEmployeeFlags(cmd *cobra.Command, e *ledger.Employee) error {
	f := cmd.Flags()
	if f.Changed("name") {
		e.Name = empName
	}
	if f.Changed("phone") {
		e.Phone = empPhone
	}
	if f.Changed("department") {
		e.DepartmentID = optionalID(empDept)
	}
	if f.Changed("job-title") {
		e.JobTitle = empJob
	}
	if f.Changed("payment-method") {
		e.PaymentMethod = empPayment
	}
	if f.Changed("salary") {
		salary, err := ledger.ParseAmount(empSalary)
		if err != nil {
			return err
		}
		e.Salary = salary
	}
	return nil
}

var employeeDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("employee", args[0])
		if err != nil {
			return err
		}
		return deleted("employee", id, newClient(logger).DeleteEmployee(cmd.Context(), id))
	},
}

var slipMonth string

var employeeSlipCmd = &cobra.Command{
	Use:   "slip [id]",
	Short: "Show an employee's salary slip for a month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("employee", args[0])
		if err != nil {
			return err
		}
		month := slipMonth
		if month == "" {
			month = time.Now().Format(ledger.MonthLayout)
		}
		c := newClient(logger)
		slip, err := c.SalarySlip(cmd.Context(), id, month)
		if client.IsNotFound(err) {
			return fmt.Errorf("employee %d not found", id)
		}
		if err != nil {
			return err
		}
		bonuses, err := c.ListBonuses(cmd.Context())
		if err != nil {
			return err
		}
		deductions, err := c.ListDeductions(cmd.Context())
		if err != nil {
			return err
		}
		printSlip(os.Stdout, slip, ledger.SumAdjustments(bonuses, id, slip.Month), ledger.SumAdjustments(deductions, id, slip.Month))
		return nil
	},
}

func printSlip(w io.Writer, slip *ledger.SalarySlip, bonuses, deductions decimal.Decimal) {
	row := func(label, value string) { fmt.Fprintf(w, "%-16s %14s\n", label, value) }
	fmt.Fprintf(w, "Salary slip: employee %d, %s\n\n", slip.EmployeeID, slip.Month)
	row("Base", ledger.FormatAmount(slip.Base))
	row("Cost of living", ledger.FormatAmount(slip.CostOfLiving))
	row("Job nature", ledger.FormatAmount(slip.JobNature))
	row("Gross", ledger.FormatAmount(slip.Gross()))
	row("Bonuses", blankZero(bonuses))
	row("Deductions", blankZero(deductions))
	row("", "--------------")
	row("Net salary", ledger.FormatSigned(slip.NetSalary))
}

func departmentNames(ctx context.Context, c *client.Client) (map[int64]string, error) {
	depts, err := c.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(depts))
	for _, d := range depts {
		names[d.ID] = d.Name
	}
	return names, nil
}

func init() {
	for _, c := range []*cobra.Command{employeeCreateCmd, employeeUpdateCmd} {
		c.Flags().StringVar(&empName, "name", "", "Employee name")
		c.Flags().StringVar(&empPhone, "phone", "", "Phone number")
		c.Flags().Int64Var(&empDept, "department", 0, "Department ID")
		c.Flags().StringVar(&empJob, "job-title", "", "Job title")
		c.Flags().StringVar(&empSalary, "salary", "", "Gross monthly salary")
		c.Flags().StringVar(&empPayment, "payment-method", "", "Payment method, e.g. bank or cash")
	}
	employeeCreateCmd.MarkFlagRequired("name")
	employeeCreateCmd.MarkFlagRequired("salary")
	employeeSlipCmd.Flags().StringVar(&slipMonth, "month", "", "Payroll month, YYYY-MM (default this month)")

	employeeCmd.AddCommand(employeeListCmd, employeeCreateCmd, employeeUpdateCmd, employeeDeleteCmd, employeeSlipCmd)
	rootCmd.AddCommand(employeeCmd)
}
