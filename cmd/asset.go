package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/spf13/cobra"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Fixed assets",
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets with their yearly depreciation",
	RunE: func(cmd *cobra.Command, args []string) error {
		assets, err := newClient(logger).ListAssets(cmd.Context())
		if err != nil {
			return err
		}
		if len(assets) == 0 {
			fmt.Println("No assets found.")
			return nil
		}
		cost, dep := decimal.Zero, decimal.Zero
		fmt.Printf("%-6s %-24s %-12s %14s %6s %14s\n", "ID", "NAME", "PURCHASED", "COST", "RATE%", "PER YEAR")
		fmt.Printf("%-6s %-24s %-12s %14s %6s %14s\n", "--", "----", "---------", "----", "-----", "--------")
		for _, a := range assets {
			fmt.Printf("%-6d %-24s %-12s %14s %6s %14s\n", a.ID, clip(a.Name, 24), a.PurchaseDate,
				ledger.FormatAmount(a.Cost), a.DepreciationRate.String(), ledger.FormatAmount(a.AnnualDepreciation()))
			cost = cost.Add(a.Cost)
			dep = dep.Add(a.AnnualDepreciation())
		}
		fmt.Printf("%-6s %-24s %-12s %14s %6s %14s\n", "", "TOTAL", "", ledger.FormatAmount(cost), "", ledger.FormatAmount(dep))
		return nil
	},
}

var (
	assetName string
	assetDate string
	assetCost string
	assetRate string
)

var assetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a fixed asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cost, err := ledger.ParseAmount(assetCost)
		if err != nil {
			return err
		}
		rate, err := ledger.ParseAmount(assetRate)
		if err != nil {
			return err
		}
		a := &ledger.Asset{Name: assetName, PurchaseDate: assetDate, Cost: cost, DepreciationRate: rate}
		created, err := newClient(logger).CreateAsset(cmd.Context(), a)
		if err != nil {
			return err
		}
		fmt.Printf("Asset %d created: %s (%s)\n", created.ID, created.Name, ledger.FormatAmount(created.Cost))
		return nil
	},
}

func init() {
	assetCreateCmd.Flags().StringVar(&assetName, "name", "", "Asset name")
	assetCreateCmd.Flags().StringVar(&assetDate, "purchased", "", "Purchase date, YYYY-MM-DD")
	assetCreateCmd.Flags().StringVar(&assetCost, "cost", "", "Cost")
	assetCreateCmd.Flags().StringVar(&assetRate, "rate", "0", "Yearly depreciation rate in percent")
	assetCreateCmd.MarkFlagRequired("name")
	assetCreateCmd.MarkFlagRequired("cost")

	assetCmd.AddCommand(assetListCmd, assetCreateCmd)
	rootCmd.AddCommand(assetCmd)
}
