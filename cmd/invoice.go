package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Vendor and sales invoices",
}

var vendorInvoiceCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Purchase invoices from vendors",
}

var salesInvoiceCmd = &cobra.Command{
	Use:   "sales",
	Short: "Sales invoices to customers",
}

var vendorInvoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vendor invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		invs, err := newClient(logger).ListVendorInvoices(cmd.Context())
		if err != nil {
			return err
		}
		if len(invs) == 0 {
			fmt.Println("No vendor invoices found.")
			return nil
		}
		total := decimal.Zero
		fmt.Printf("%-6s %-12s %-24s %-18s %5s %12s\n", "ID", "DATE", "VENDOR", "DEPARTMENT", "LINES", "TOTAL")
		fmt.Printf("%-6s %-12s %-24s %-18s %5s %12s\n", "--", "----", "------", "----------", "-----", "-----")
		for _, inv := range invs {
			vendor := inv.VendorName
			if vendor == "" {
				vendor = fmt.Sprintf("#%d", inv.VendorID)
			}
			fmt.Printf("%-6d %-12s %-24s %-18s %5d %12s\n", inv.ID, inv.Date, clip(vendor, 24),
				clip(inv.DepartmentName, 18), len(inv.Lines), ledger.FormatAmount(inv.Total))
			total = total.Add(inv.Total)
		}
		fmt.Printf("%-6s %-12s %-24s %-18s %5s %12s\n", "", "", "", "", "TOTAL", ledger.FormatAmount(total))
		return nil
	},
}

var (
	viVendor int64
	viDept   int64
	viDate   string
	viLines  []string
)

var vendorInvoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a vendor invoice for daily consumables",
	Example: `  erpview invoice vendor create --vendor 2 \
    --line "Coffee beans:3:7.50" --line "Milk:5:3"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := buildVendorInvoice(viVendor, viDept, viDate, viLines)
		if err != nil {
			return err
		}
		created, err := newClient(logger).CreateVendorInvoice(cmd.Context(), inv)
		if err != nil {
			return err
		}
		fmt.Printf("Vendor invoice %d posted: %s, %d lines (%s)\n", created.ID, inv.Date, len(inv.Lines), ledger.FormatAmount(inv.Total))
		return nil
	},
}

var vendorInvoiceDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a vendor invoice and its journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("vendor invoice", args[0])
		if err != nil {
			return err
		}
		return deleted("vendor invoice", id, newClient(logger).DeleteVendorInvoice(cmd.Context(), id))
	},
}

var salesInvoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sales invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		invs, err := newClient(logger).ListSalesInvoices(cmd.Context())
		if err != nil {
			return err
		}
		if len(invs) == 0 {
			fmt.Println("No sales invoices found.")
			return nil
		}
		total := decimal.Zero
		fmt.Printf("%-6s %-12s %-24s %5s %8s %12s\n", "ID", "DATE", "CUSTOMER", "ITEMS", "JOURNAL", "TOTAL")
		fmt.Printf("%-6s %-12s %-24s %5s %8s %12s\n", "--", "----", "--------", "-----", "-------", "-----")
		for _, inv := range invs {
			je := ""
			if inv.JournalEntryID != nil {
				je = fmt.Sprintf("%d", *inv.JournalEntryID)
			}
			fmt.Printf("%-6d %-12s %-24s %5d %8s %12s\n", inv.ID, inv.Date, clip(inv.CustomerName, 24),
				len(inv.Items), je, ledger.FormatAmount(inv.Total))
			total = total.Add(inv.Total)
		}
		fmt.Printf("%-6s %-12s %-24s %5s %8s %12s\n", "", "", "", "", "TOTAL", ledger.FormatAmount(total))
		return nil
	},
}

var (
	siCustomer  string
	siDept      int64
	siWarehouse int64
	siDate      string
	siItems     []string
)

var salesInvoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a sales invoice, issuing its items from stock",
	Example: `  erpview invoice sales create --customer "Northwind" --department 1 \
    --item 7:2:100 --item 8:1:50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := buildSalesInvoice(siCustomer, siDept, siDate, siItems)
		if err != nil {
			return err
		}
		created, err := newClient(logger).CreateSalesInvoice(cmd.Context(), inv, siWarehouse)
		if err != nil {
			return err
		}
		fmt.Printf("Sales invoice %d posted: %s %s (%s)\n", created.ID, inv.Date, inv.CustomerName, ledger.FormatAmount(inv.Total))
		return nil
	},
}

var salesInvoiceDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a sales invoice, its stock moves and journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("sales invoice", args[0])
		if err != nil {
			return err
		}
		return deleted("sales invoice", id, newClient(logger).DeleteSalesInvoice(cmd.Context(), id))
	},
}

// buildVendorInvoice assembles an invoice from NAME:QTY:PRICE line
// arguments. The total is the sum of the lines.
func buildVendorInvoice(vendorID, deptID int64, date string, lines []string) (*ledger.VendorInvoice, error) {
	inv := &ledger.VendorInvoice{VendorID: vendorID, DepartmentID: optionalID(deptID), Date: dateOrToday(date)}
	for _, arg := range lines {
		name, qty, price, err := splitItemArg(arg)
		if err != nil {
			return nil, fmt.Errorf("--line %s: %w", arg, err)
		}
		if name == "" {
			return nil, fmt.Errorf("--line %s: product %w", arg, ledger.ErrEmptyName)
		}
		inv.Lines = append(inv.Lines, ledger.VendorInvoiceLine{ProductName: name, Quantity: qty, UnitPrice: price})
	}
	inv.Total = inv.LinesTotal()
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// buildSalesInvoice assembles an invoice from PRODUCT_ID:QTY:PRICE item
// arguments.
func buildSalesInvoice(customer string, deptID int64, date string, items []string) (*ledger.SalesInvoice, error) {
	inv := &ledger.SalesInvoice{CustomerName: customer, DepartmentID: deptID, Date: dateOrToday(date)}
	for _, arg := range items {
		product, qty, price, err := splitItemArg(arg)
		if err != nil {
			return nil, fmt.Errorf("--item %s: %w", arg, err)
		}
		id, err := parseID("product", product)
		if err != nil {
			return nil, fmt.Errorf("--item %s: %w", arg, err)
		}
		inv.Items = append(inv.Items, ledger.SalesInvoiceItem{ProductID: id, Quantity: qty, Price: price})
	}
	inv.Total = inv.ItemsTotal()
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// splitItemArg splits WHAT:QTY:PRICE. WHAT may itself contain colons.
func splitItemArg(arg string) (string, decimal.Decimal, decimal.Decimal, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 3 {
		return "", decimal.Zero, decimal.Zero, fmt.Errorf("expected NAME:QTY:PRICE")
	}
	n := len(parts)
	qty, err := ledger.ParseAmount(parts[n-2])
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	price, err := ledger.ParseAmount(parts[n-1])
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	return strings.TrimSpace(strings.Join(parts[:n-2], ":")), qty, price, nil
}

func init() {
	vendorInvoiceCreateCmd.Flags().Int64Var(&viVendor, "vendor", 0, "Vendor ID")
	vendorInvoiceCreateCmd.Flags().Int64Var(&viDept, "department", 0, "Department ID (optional)")
	vendorInvoiceCreateCmd.Flags().StringVar(&viDate, "date", "", "Invoice date, YYYY-MM-DD (default today)")
	vendorInvoiceCreateCmd.Flags().StringArrayVar(&viLines, "line", nil, "Line as NAME:QTY:UNIT_PRICE (repeatable)")
	vendorInvoiceCreateCmd.MarkFlagRequired("vendor")

	salesInvoiceCreateCmd.Flags().StringVar(&siCustomer, "customer", "", "Customer name")
	salesInvoiceCreateCmd.Flags().Int64Var(&siDept, "department", 0, "Selling department ID")
	salesInvoiceCreateCmd.Flags().Int64Var(&siWarehouse, "warehouse", 1, "Warehouse the items ship from")
	salesInvoiceCreateCmd.Flags().StringVar(&siDate, "date", "", "Invoice date, YYYY-MM-DD (default today)")
	salesInvoiceCreateCmd.Flags().StringArrayVar(&siItems, "item", nil, "Item as PRODUCT_ID:QTY:PRICE (repeatable)")
	salesInvoiceCreateCmd.MarkFlagRequired("customer")
	salesInvoiceCreateCmd.MarkFlagRequired("department")

	vendorInvoiceCmd.AddCommand(vendorInvoiceListCmd, vendorInvoiceCreateCmd, vendorInvoiceDeleteCmd)
	salesInvoiceCmd.AddCommand(salesInvoiceListCmd, salesInvoiceCreateCmd, salesInvoiceDeleteCmd)
	invoiceCmd.AddCommand(vendorInvoiceCmd, salesInvoiceCmd)
	rootCmd.AddCommand(invoiceCmd)
}
