package cmd

import (
	"fmt"

	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Manage vendors",
}

var (
	vendorCreateName    string
	vendorCreateContact string
)

var vendorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a vendor",
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := newClient(logger).CreateVendor(cmd.Context(), &ledger.Vendor{
			Name:    vendorCreateName,
			Contact: vendorCreateContact,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Vendor created: %d %s\n", created.ID, created.Name)
		return nil
	},
}

var vendorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vendors",
	RunE: func(cmd *cobra.Command, args []string) error {
		vendors, err := newClient(logger).ListVendors(cmd.Context())
		if err != nil {
			return err
		}
		if len(vendors) == 0 {
			fmt.Println("No vendors found.")
			return nil
		}

		fmt.Printf("%-6s %-30s %s\n", "ID", "NAME", "CONTACT")
		fmt.Printf("%-6s %-30s %s\n", "--", "----", "-------")
		for _, v := range vendors {
			fmt.Printf("%-6d %-30s %s\n", v.ID, clip(v.Name, 30), v.Contact)
		}
		return nil
	},
}

func init() {
	vendorCreateCmd.Flags().StringVar(&vendorCreateName, "name", "", "Vendor name")
	vendorCreateCmd.Flags().StringVar(&vendorCreateContact, "contact", "", "Phone or email")
	vendorCreateCmd.MarkFlagRequired("name")

	vendorCmd.AddCommand(vendorCreateCmd, vendorListCmd)
	rootCmd.AddCommand(vendorCmd)
}
