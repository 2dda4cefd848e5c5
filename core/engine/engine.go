// Package engine provides the refining profit pipeline.
// CLI is a thin wrapper around this engine.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"refining-profit/core/pricing"
	"refining-profit/core/types"
	"refining-profit/internal/logging"
)

// PriceResolver resolves one authoritative price per resource
type PriceResolver interface {
	ResolvePrices(ctx context.Context, resources []types.Resource) (types.PriceMap, error)
}

// ProfitCalculator turns resources and prices into profitability records
type ProfitCalculator interface {
	Profits(resources []types.Resource, prices types.PriceMap, useFocus bool) ([]types.ProfitView, error)
}

// Engine wires price resolution to profit computation
type Engine struct {
	resolver   PriceResolver
	calculator ProfitCalculator
	logger     *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine
func New(resolver PriceResolver, calculator ProfitCalculator, opts ...Option) *Engine {
	e := &Engine{
		resolver:   resolver,
		calculator: calculator,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.Or(e.logger)
	return e
}

// Result is the output of one run
type Result struct {
	// Prices are the resolved home-city prices
	Prices types.PriceMap

	// Profits holds one record per fully priced product recipe, unordered
	Profits []types.ProfitView

	// Skipped lists resources left out because their subcategory has no home city
	Skipped []string

	// Timing
	StartedAt time.Time
	Duration  time.Duration
}

// Marketable returns the resources whose subcategory has a home city, and the
// names of those that were left out.
func Marketable(resources []types.Resource) (kept []types.Resource, skipped []string) {
	kept = make([]types.Resource, 0, len(resources))
	for _, res := range resources {
		if _, ok := pricing.HomeCity(res.Subcategory); !ok {
			skipped = append(skipped, res.Name)
			continue
		}
		kept = append(kept, res)
	}
	return kept, skipped
}

// ResolvePrices resolves prices for every marketable resource
func (e *Engine) ResolvePrices(ctx context.Context, resources []types.Resource) (types.PriceMap, []string, error) {
	kept, skipped := Marketable(resources)
	if len(skipped) > 0 {
		e.logger.Info("skipping resources without a home city",
			zap.Int("count", len(skipped)),
			zap.Strings("items", skipped))
	}

	prices, err := e.resolver.ResolvePrices(ctx, kept)
	if err != nil {
		return nil, skipped, fmt.Errorf("resolve prices: %w", err)
	}
	return prices, skipped, nil
}

// Run resolves prices and computes profits. Any fatal error aborts the run;
// there is no partial result.
func (e *Engine) Run(ctx context.Context, resources []types.Resource, useFocus bool) (*Result, error) {
	start := time.Now()

	prices, skipped, err := e.ResolvePrices(ctx, resources)
	if err != nil {
		return nil, err
	}

	kept, _ := Marketable(resources)
	profits, err := e.calculator.Profits(kept, prices, useFocus)
	if err != nil {
		return nil, fmt.Errorf("compute profits: %w", err)
	}

	result := &Result{
		Prices:    prices,
		Profits:   profits,
		Skipped:   skipped,
		StartedAt: start,
		Duration:  time.Since(start),
	}

	e.logger.Info("refining run complete",
		zap.Int("resources", len(resources)),
		zap.Int("priced", len(prices)),
		zap.Int("recipes", len(profits)),
		zap.Bool("focus", useFocus),
		zap.Duration("duration", result.Duration))

	return result, nil
}
