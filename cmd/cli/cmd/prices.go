// Package cmd - prices command
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"refining-profit/core/output"
	"refining-profit/internal/config"
)

var (
	pricesItemsPath string
	pricesFormat    string
)

// pricesCmd lists the resolved home-city prices
var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "List resolved home-city market prices",
	Long: `Fetch current quotes and hourly averages for every catalog resource
and list the price kept for each item's home city.`,
	Args: cobra.NoArgs,
	RunE: runPrices,
}

func init() {
	pricesCmd.Flags().StringVarP(&pricesItemsPath, "items", "i", "", "path to items.xml (default from config)")
	pricesCmd.Flags().StringVarP(&pricesFormat, "format", "f", "", "output format (cli, json)")
}

func runPrices(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Get()

	formatter, err := output.ForFormat(stringFlag(cmd, "format", pricesFormat, cfg.Output.DefaultFormat))
	if err != nil {
		return err
	}

	cat, err := loadCatalog(stringFlag(cmd, "items", pricesItemsPath, cfg.Catalog.ItemsPath))
	if err != nil {
		return err
	}

	prices, _, err := newEngine(cfg).ResolvePrices(ctx, cat.Resources())
	if err != nil {
		return err
	}
	return formatter.RenderPrices(cmd.OutOrStdout(), prices.Sorted())
}
