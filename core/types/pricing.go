// Package types - Pricing types
package types

import "sort"

// ItemPrice is the authoritative market price of one item in its home city.
type ItemPrice struct {
	// ItemName is the unique item name
	ItemName string `json:"item_name"`

	// City is the home city the price was observed in
	City string `json:"city"`

	// SellPrice is the current minimum sell order
	SellPrice int64 `json:"sell_price"`

	// AveragePrice is the most recent hourly average
	AveragePrice int64 `json:"average_price"`
}

// PriceMap maps item names to their resolved price.
type PriceMap map[string]ItemPrice

// Has reports whether name has a resolved price.
func (m PriceMap) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Sorted returns the prices ordered by item name.
func (m PriceMap) Sorted() []ItemPrice {
	prices := make([]ItemPrice, 0, len(m))
	for _, p := range m {
		prices = append(prices, p)
	}
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].ItemName < prices[j].ItemName
	})
	return prices
}
