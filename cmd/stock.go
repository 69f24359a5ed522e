package cmd

import (
	"fmt"

	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Stock moves between warehouses and departments",
}

var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock moves with the resulting stock levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		moves, err := newClient(logger).ListStockMoves(cmd.Context())
		if err != nil {
			return err
		}
		if len(moves) == 0 {
			fmt.Println("No stock moves found.")
			return nil
		}
		fmt.Printf("%-6s %-12s %-24s %-4s %10s %-18s %10s %s\n", "ID", "DATE", "PRODUCT", "TYPE", "QTY", "DEPARTMENT", "ON HAND", "")
		fmt.Printf("%-6s %-12s %-24s %-4s %10s %-18s %10s %s\n", "--", "----", "-------", "----", "---", "----------", "-------", "")
		for _, m := range moves {
			flag := ""
			if m.LowStockAlert {
				flag = "LOW"
			}
			fmt.Printf("%-6d %-12s %-24s %-4s %10s %-18s %10s %s\n", m.ID, m.Date, clip(m.ProductName, 24), m.MoveType,
				m.Quantity.String(), clip(m.DepartmentName, 18), m.CurrentQuantity.String(), flag)
		}
		return nil
	},
}

var (
	smProduct   int64
	smWarehouse int64
	smDept      int64
	smQty       string
	smType      string
	smDate      string
	smRef       string
	smPurpose   string
)

var stockMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Record a stock receipt (in) or issue (out)",
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := ledger.ParseAmount(smQty)
		if err != nil {
			return err
		}
		m := &ledger.StockMove{
			ProductID:    smProduct,
			WarehouseID:  smWarehouse,
			DepartmentID: smDept,
			Date:         dateOrToday(smDate),
			Quantity:     qty,
			MoveType:     smType,
			Reference:    smRef,
			Purpose:      smPurpose,
		}
		created, err := newClient(logger).CreateStockMove(cmd.Context(), m)
		if err != nil {
			return err
		}
		fmt.Printf("Stock move %d recorded: %s %s, %s now on hand\n", created.ID, created.MoveType, created.Quantity, created.CurrentQuantity)
		if created.LowStockAlert {
			fmt.Printf("Stock is at or below the reorder level of %s\n", created.ReorderLevel)
		}
		return nil
	},
}

func init() {
	stockMoveCmd.Flags().Int64Var(&smProduct, "product", 0, "Product ID")
	stockMoveCmd.Flags().Int64Var(&smWarehouse, "warehouse", 1, "Warehouse ID")
	stockMoveCmd.Flags().Int64Var(&smDept, "department", 0, "Department ID")
	stockMoveCmd.Flags().StringVar(&smQty, "qty", "", "Quantity")
	stockMoveCmd.Flags().StringVar(&smType, "type", ledger.MoveOut, "Move type, in or out")
	stockMoveCmd.Flags().StringVar(&smDate, "date", "", "Move date, YYYY-MM-DD (default today)")
	stockMoveCmd.Flags().StringVar(&smRef, "ref", "", "Reference")
	stockMoveCmd.Flags().StringVar(&smPurpose, "purpose", "", "Purpose")
	stockMoveCmd.MarkFlagRequired("product")
	stockMoveCmd.MarkFlagRequired("department")
	stockMoveCmd.MarkFlagRequired("qty")

	stockCmd.AddCommand(stockListCmd, stockMoveCmd)
	rootCmd.AddCommand(stockCmd)
}
