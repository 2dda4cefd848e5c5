// Package pricing provides market price resolution.
// This package joins current quotes with hourly averages and narrows every
// item to the price observed in its home city.
package pricing

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"refining-profit/core/types"
	"refining-profit/internal/errors"
	"refining-profit/internal/logging"
)

// Quote is a current sell-side quote for an item in a city
type Quote struct {
	ItemName  string
	City      string
	SellPrice int64
}

// Average is the latest hourly average price for an item in a city
type Average struct {
	ItemName     string
	City         string
	AveragePrice int64
}

// Source fetches raw market data from an external API
type Source interface {
	// FetchQuotes retrieves current quotes for every name in every city with one request
	FetchQuotes(ctx context.Context, names, cities []string) ([]Quote, error)

	// FetchAverages retrieves the latest hourly averages for every name in every city with one request
	FetchAverages(ctx context.Context, names, cities []string) ([]Average, error)
}

// Resolver turns raw quotes and averages into one authoritative price per item
type Resolver struct {
	source Source
	logger *zap.Logger
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for join diagnostics
func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver backed by source
func NewResolver(source Source, opts ...ResolverOption) *Resolver {
	r := &Resolver{source: source}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.Or(r.logger)
	return r
}

type priceKey struct {
	item string
	city string
}

// ResolvePrices fetches and joins market data for resources. The returned map
// holds at most one price per item, always from the item's home city. Any
// fetch or parse error aborts the resolution and no partial map is returned.
func (r *Resolver) ResolvePrices(ctx context.Context, resources []types.Resource) (types.PriceMap, error) {
	homeByItem := make(map[string]string, len(resources))
	names := make([]string, 0, len(resources))
	citySet := make(map[string]struct{})

	for _, res := range resources {
		city, ok := HomeCity(res.Subcategory)
		if !ok {
			return nil, errors.ConfigLookup("home city", res.Subcategory).
				WithContext("item", res.Name)
		}
		if _, seen := homeByItem[res.Name]; seen {
			continue
		}
		homeByItem[res.Name] = city
		names = append(names, res.Name)
		citySet[city] = struct{}{}
	}

	if len(names) == 0 {
		return types.PriceMap{}, nil
	}

	cities := make([]string, 0, len(citySet))
	for city := range citySet {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	r.logger.Debug("fetching market prices",
		zap.Int("items", len(names)),
		zap.Strings("cities", cities))

	quotes, err := r.source.FetchQuotes(ctx, names, cities)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}
	averages, err := r.source.FetchAverages(ctx, names, cities)
	if err != nil {
		return nil, fmt.Errorf("fetch averages: %w", err)
	}

	averageByKey := make(map[priceKey]int64, len(averages))
	for _, avg := range averages {
		averageByKey[priceKey{avg.ItemName, avg.City}] = avg.AveragePrice
	}

	prices := make(types.PriceMap, len(names))
	var joinMisses, foreign int
	for _, q := range quotes {
		avg, ok := averageByKey[priceKey{q.ItemName, q.City}]
		if !ok {
			joinMisses++
			r.logger.Debug("quote has no matching average",
				zap.String("item", q.ItemName),
				zap.String("city", q.City))
			continue
		}
		if home, ok := homeByItem[q.ItemName]; !ok || home != q.City {
			foreign++
			continue
		}
		prices[q.ItemName] = types.ItemPrice{
			ItemName:     q.ItemName,
			City:         q.City,
			SellPrice:    q.SellPrice,
			AveragePrice: avg,
		}
	}

	if joinMisses > 0 {
		r.logger.Warn("dropped quotes without an hourly average",
			zap.Int("dropped", joinMisses),
			zap.Int("quotes", len(quotes)))
	}
	r.logger.Debug("resolved market prices",
		zap.Int("priced", len(prices)),
		zap.Int("requested", len(names)),
		zap.Int("non_home_city", foreign))

	return prices, nil
}
