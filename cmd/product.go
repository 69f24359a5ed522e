package cmd

import (
	"fmt"

	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Inspect and maintain products",
}

var productLowOnly bool

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products and flag those at or below their reorder level",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := newClient(logger).ListProducts(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-30s %10s %10s %s\n", "ID", "NAME", "ON HAND", "REORDER", "")
		fmt.Printf("%-6s %-30s %10s %10s %s\n", "--", "----", "-------", "-------", "")
		n := 0
		for _, p := range products {
			flag := ""
			if p.NeedsReorder() {
				flag = "REORDER"
			} else if productLowOnly {
				continue
			}
			fmt.Printf("%-6d %-30s %10s %10s %s\n", p.ID, clip(p.Name, 30), p.QuantityOnHand.String(), p.ReorderLevel.String(), flag)
			n++
		}
		if n == 0 {
			fmt.Println("No products found.")
		}
		return nil
	},
}

var (
	prodName       string
	prodDesc       string
	prodQty        string
	prodReorder    string
	prodConsumable bool
)

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &ledger.Product{Name: prodName}
		if err := applyProductFlags(cmd, p); err != nil {
			return err
		}
		created, err := newClient(logger).CreateProduct(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Product %d created: %s\n", created.ID, created.Name)
		return nil
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change a product's details or stock levels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("product", args[0])
		if err != nil {
			return err
		}
		c := newClient(logger)
		products, err := c.ListProducts(cmd.Context())
		if err != nil {
			return err
		}
		var current *ledger.Product
		for i := range products {
			if products[i].ID == id {
				current = &products[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("product %d not found", id)
		}
		if err := applyProductFlags(cmd, current); err != nil {
			return err
		}
		updated, err := c.UpdateProduct(cmd.Context(), id, current)
		if err != nil {
			return err
		}
		fmt.Printf("Product %d updated: %s, %s on hand\n", updated.ID, updated.Name, updated.QuantityOnHand)
		return nil
	},
}

func applyProductFlags(cmd *cobra.Command, p *ledger.Product) error {
	f := cmd.Flags()
	if f.Changed("name") {
		p.Name = prodName
	}
	if f.Changed("desc") {
		p.Description = prodDesc
	}
	if f.Changed("consumable") {
		p.IsDailyConsumable = prodConsumable
	}
	if f.Changed("qty") {
		q, err := ledger.ParseAmount(prodQty)
		if err != nil {
			return err
		}
		p.QuantityOnHand = q
	}
	if f.Changed("reorder") {
		r, err := ledger.ParseAmount(prodReorder)
		if err != nil {
			return err
		}
		p.ReorderLevel = r
	}
	return nil
}

func init() {
	productListCmd.Flags().BoolVar(&productLowOnly, "low", false, "Only products that need reordering")
	for _, c := range []*cobra.Command{productCreateCmd, productUpdateCmd} {
		c.Flags().StringVar(&prodName, "name", "", "Product name")
		c.Flags().StringVar(&prodDesc, "desc", "", "Description")
		c.Flags().StringVar(&prodQty, "qty", "", "Quantity on hand")
		c.Flags().StringVar(&prodReorder, "reorder", "", "Reorder level")
		c.Flags().BoolVar(&prodConsumable, "consumable", false, "Daily consumable")
	}
	productCreateCmd.MarkFlagRequired("name")

	productCmd.AddCommand(productListCmd, productCreateCmd, productUpdateCmd)
	rootCmd.AddCommand(productCmd)
}
