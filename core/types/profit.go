// Package types - Profitability records
package types

import "github.com/shopspring/decimal"

// ProfitView is the computed profitability of one (product, recipe) pair.
type ProfitView struct {
	Product Resource `json:"product"`
	Recipe  Recipe   `json:"recipe"`

	// SellPrice is the product's current sell price
	SellPrice decimal.Decimal `json:"sell_price"`

	// Revenue is the sell price scaled by the expected output
	Revenue decimal.Decimal `json:"revenue"`

	// IngredientCost sums ingredient sell prices
	IngredientCost decimal.Decimal `json:"ingredient_cost"`

	// AverageIngredientCost sums ingredient hourly averages
	AverageIngredientCost decimal.Decimal `json:"average_ingredient_cost"`

	// PercentDifference measures how far current ingredient prices drifted from the averages
	PercentDifference decimal.Decimal `json:"percent_difference"`

	// Cost is ingredients + refining fee + market cost
	Cost decimal.Decimal `json:"cost"`

	// FocusCost is the focus consumed by one craft at the product's tier
	FocusCost decimal.Decimal `json:"focus_cost"`

	Profit decimal.Decimal `json:"profit"`
}

// ProfitPerFocus returns Profit / FocusCost.
func (v ProfitView) ProfitPerFocus() decimal.Decimal {
	if v.FocusCost.IsZero() {
		return decimal.Zero
	}
	return v.Profit.Div(v.FocusCost)
}
