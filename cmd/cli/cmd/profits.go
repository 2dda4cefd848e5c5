// Package cmd - profits command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	adapter "refining-profit/adapters/pricing"
	"refining-profit/core/catalog"
	"refining-profit/core/engine"
	"refining-profit/core/output"
	"refining-profit/core/pricing"
	"refining-profit/core/refining"
	"refining-profit/internal/config"
	"refining-profit/internal/logging"
)

var (
	itemsPath    string
	outputFormat string
	useFocus     bool
	maxTier      int
	sortBy       string
)

// profitsCmd represents the profits command
var profitsCmd = &cobra.Command{
	Use:   "profits",
	Short: "Rank refining recipes by profit",
	Long: `Load the resource catalog, fetch home-city market prices and print the
profit of every refining recipe whose ingredients are all priced.

Examples:
  refining-profit profits
  refining-profit profits --focus --sort profit_per_focus
  refining-profit profits --items ./items.xml --max-tier 8 --format json`,
	Args: cobra.NoArgs,
	RunE: runProfits,
}

func init() {
	profitsCmd.Flags().StringVarP(&itemsPath, "items", "i", "", "path to items.xml (default from config)")
	profitsCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	profitsCmd.Flags().BoolVar(&useFocus, "focus", false, "apply the focus return rate")
	profitsCmd.Flags().IntVar(&maxTier, "max-tier", 0, "hide products above this tier (0 = all)")
	profitsCmd.Flags().StringVarP(&sortBy, "sort", "s", "", "ranking metric (profit, profit_per_focus, percent_difference)")
}

func runProfits(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Get()

	formatter, err := output.ForFormat(stringFlag(cmd, "format", outputFormat, cfg.Output.DefaultFormat))
	if err != nil {
		return err
	}
	key, err := output.ParseSortKey(stringFlag(cmd, "sort", sortBy, cfg.Output.SortBy))
	if err != nil {
		return err
	}
	opts := output.Options{MaxTier: cfg.Output.MaxTier, SortBy: key}
	if cmd.Flags().Changed("max-tier") {
		opts.MaxTier = maxTier
	}
	focus := cfg.Refining.UseFocus
	if cmd.Flags().Changed("focus") {
		focus = useFocus
	}

	cat, err := loadCatalog(stringFlag(cmd, "items", itemsPath, cfg.Catalog.ItemsPath))
	if err != nil {
		return err
	}

	result, err := newEngine(cfg).Run(ctx, cat.Resources(), focus)
	if err != nil {
		return err
	}

	return formatter.Render(cmd.OutOrStdout(), output.NewReport(result.Profits, focus, opts))
}

func stringFlag(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	stats := cat.Stats()
	logging.Info("loaded resource catalog",
		zap.String("path", path),
		zap.Int("resources", stats.Total),
		zap.Int("recipes", stats.Recipes),
		zap.Strings("subcategories", stats.Subcategories()))
	return cat, nil
}

func newEngine(cfg *config.Config) *engine.Engine {
	client := adapter.NewClient(adapter.Config{
		BaseURL:           cfg.Market.BaseURL,
		Timeout:           cfg.Market.Timeout(),
		RequestsPerMinute: cfg.Market.RequestsPerMinute,
		Quality:           cfg.Market.Quality,
		UserAgent:         "refining-profit/" + version,
	}, logging.Logger)

	return engine.New(
		pricing.NewResolver(client, pricing.WithLogger(logging.Logger)),
		refining.NewCalculator(cfg.Refining.UsageFees, logging.Logger),
		engine.WithLogger(logging.Logger),
	)
}
