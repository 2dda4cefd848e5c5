package refining

import "github.com/shopspring/decimal"

var (
	// returnRateNoFocus and returnRateFocus are resource return rates in percent.
	returnRateNoFocus = decimal.RequireFromString("36.7")
	returnRateFocus   = decimal.RequireFromString("53.9")

	marketTax  = decimal.RequireFromString("0.03")
	setupFee   = decimal.RequireFromString("0.015")
	marketCost = marketTax.Add(setupFee)

	nutritionPerItemValue = decimal.RequireFromString("0.1125")

	hundred = decimal.NewFromInt(100)
)

// focusCostByTier is the focus spent on one craft of a product at each tier.
var focusCostByTier = map[int]int64{
	2: 10,
	3: 24,
	4: 48,
	5: 89,
	6: 160,
	7: 284,
	8: 500,
}

// productSubcategories are the refined goods. Raw materials are not products.
var productSubcategories = map[string]bool{
	"planks":     true,
	"cloth":      true,
	"stoneblock": true,
	"leather":    true,
	"metalbar":   true,
}

// DefaultUsageFees are station usage fees in silver per 100 nutrition.
func DefaultUsageFees() map[string]int {
	return map[string]int{
		"cloth":      600,
		"leather":    400,
		"metalbar":   2600,
		"planks":     380,
		"stoneblock": 800,
	}
}

// IsProduct reports whether subcategory is a refined good.
func IsProduct(subcategory string) bool {
	return productSubcategories[subcategory]
}

// MarketCost is the flat market tax plus order setup fee added to every recipe.
func MarketCost() decimal.Decimal {
	return marketCost
}

// ReturnRate returns the resource return rate in percent.
func ReturnRate(useFocus bool) decimal.Decimal {
	if useFocus {
		return returnRateFocus
	}
	return returnRateNoFocus
}
