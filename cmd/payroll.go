package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/simonvc/erpview/internal/client"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var departmentCmd = &cobra.Command{
	Use:   "department",
	Short: "Manage departments",
}

var departmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments",
	RunE: func(cmd *cobra.Command, args []string) error {
		depts, err := newClient(logger).ListDepartments(cmd.Context())
		if err != nil {
			return err
		}
		if len(depts) == 0 {
			fmt.Println("No departments found.")
			return nil
		}
		fmt.Printf("%-6s %-24s %s\n", "ID", "NAME", "DESCRIPTION")
		fmt.Printf("%-6s %-24s %s\n", "--", "----", "-----------")
		for _, d := range depts {
			fmt.Printf("%-6d %-24s %s\n", d.ID, clip(d.Name, 24), d.Description)
		}
		return nil
	},
}

var (
	deptName string
	deptDesc string
)

var departmentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a department",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newClient(logger).CreateDepartment(cmd.Context(), &ledger.Department{Name: deptName, Description: deptDesc})
		if err != nil {
			return err
		}
		fmt.Printf("Department %d created: %s\n", d.ID, d.Name)
		return nil
	},
}

var departmentDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("department", args[0])
		if err != nil {
			return err
		}
		return deleted("department", id, newClient(logger).DeleteDepartment(cmd.Context(), id))
	},
}

// adjustmentOps binds the bonus or deduction endpoints to one command tree.
type adjustmentOps struct {
	list   func(*client.Client, context.Context) ([]ledger.PayAdjustment, error)
	create func(*client.Client, context.Context, *ledger.PayAdjustment) (*ledger.PayAdjustment, error)
	del    func(*client.Client, context.Context, int64) error
}

func newAdjustmentCmd(kind, plural string, ops adjustmentOps) *cobra.Command {
	root := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Manage employee %s", plural),
	}

	var month string
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s, optionally for one month", plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != "" {
				m, err := ledger.ParseMonth(month)
				if err != nil {
					return err
				}
				month = m
			}
			all, err := ops.list(newClient(logger), cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%-6s %-9s %-8s %12s %s\n", "ID", "MONTH", "EMPLOYEE", "AMOUNT", "REASON")
			fmt.Printf("%-6s %-9s %-8s %12s %s\n", "--", "-----", "--------", "------", "------")
			n := 0
			for _, a := range all {
				if month != "" && a.Month != month {
					continue
				}
				fmt.Printf("%-6d %-9s %-8d %12s %s\n", a.ID, a.Month, a.EmployeeID, ledger.FormatAmount(a.Amount), a.Reason)
				n++
			}
			if n == 0 {
				fmt.Printf("No %s found.\n", plural)
			}
			return nil
		},
	}
	list.Flags().StringVar(&month, "month", "", "Payroll month, YYYY-MM")

	var (
		employee int64
		amount   string
		reason   string
		addMonth string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Record a %s for an employee", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := ledger.ParseAmount(amount)
			if err != nil {
				return err
			}
			if addMonth == "" {
				addMonth = time.Now().Format(ledger.MonthLayout)
			}
			a := &ledger.PayAdjustment{EmployeeID: employee, Month: addMonth, Amount: amt, Reason: reason}
			created, err := ops.create(newClient(logger), cmd.Context(), a)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s %d: employee %d, %s, %s\n", kind, created.ID, created.EmployeeID, created.Month, ledger.FormatAmount(created.Amount))
			return nil
		},
	}
	add.Flags().Int64Var(&employee, "employee", 0, "Employee ID")
	add.Flags().StringVar(&amount, "amount", "", "Amount")
	add.Flags().StringVar(&addMonth, "month", "", "Payroll month, YYYY-MM (default this month)")
	add.Flags().StringVar(&reason, "reason", "", "Reason")
	add.MarkFlagRequired("employee")
	add.MarkFlagRequired("amount")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: fmt.Sprintf("Remove a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(kind, args[0])
			if err != nil {
				return err
			}
			return deleted(kind, id, ops.del(newClient(logger), cmd.Context(), id))
		},
	}

	root.AddCommand(list, add, del)
	return root
}

func init() {
	departmentCreateCmd.Flags().StringVar(&deptName, "name", "", "Department name")
	departmentCreateCmd.Flags().StringVar(&deptDesc, "desc", "", "Description")
	departmentCreateCmd.MarkFlagRequired("name")
	departmentCmd.AddCommand(departmentListCmd, departmentCreateCmd, departmentDeleteCmd)

	rootCmd.AddCommand(
		departmentCmd,
		newAdjustmentCmd("bonus", "bonuses", adjustmentOps{
			list:   (*client.Client).ListBonuses,
			create: (*client.Client).CreateBonus,
			del:    (*client.Client).DeleteBonus,
		}),
		newAdjustmentCmd("deduction", "deductions", adjustmentOps{
			list:   (*client.Client).ListDeductions,
			create: (*client.Client).CreateDeduction,
			del:    (*client.Client).DeleteDeduction,
		}),
	)
}
