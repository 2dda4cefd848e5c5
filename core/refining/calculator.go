// Package refining computes the profitability of refining recipes.
package refining

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"refining-profit/core/types"
	"refining-profit/internal/errors"
	"refining-profit/internal/logging"
)

// Calculator applies the refining profit formula to a catalog.
// It holds no state besides its fee table and is safe for concurrent use.
type Calculator struct {
	usageFees map[string]int
	logger    *zap.Logger
}

// NewCalculator creates a calculator using usageFees (silver per 100 nutrition,
// keyed by product subcategory). A nil logger uses the global one.
func NewCalculator(usageFees map[string]int, logger *zap.Logger) *Calculator {
	fees := make(map[string]int, len(usageFees))
	for k, v := range usageFees {
		fees[k] = v
	}
	return &Calculator{usageFees: fees, logger: logging.Or(logger)}
}

// ComputeProfits is a convenience wrapper around Calculator.Profits.
func ComputeProfits(resources []types.Resource, prices types.PriceMap, usageFees map[string]int, useFocus bool) ([]types.ProfitView, error) {
	return NewCalculator(usageFees, nil).Profits(resources, prices, useFocus)
}

// Profits returns one ProfitView per product recipe whose ingredients are all
// priced. The result is unordered. A missing usage fee or focus cost aborts the
// whole computation.
func (c *Calculator) Profits(resources []types.Resource, prices types.PriceMap, useFocus bool) ([]types.ProfitView, error) {
	output := OutputMultiplier(ReturnRate(useFocus))

	var views []types.ProfitView
	for _, product := range resources {
		if !IsProduct(product.Subcategory) || !product.HasRecipes() {
			continue
		}

		productPrice, ok := prices[product.Name]
		if !ok {
			c.logger.Debug("product has no price", zap.String("product", product.Name))
			continue
		}

		for _, recipe := range product.Recipes {
			if !fullyPriced(recipe, prices) {
				continue
			}
			view, err := c.recipeProfit(product, recipe, productPrice, prices, output)
			if err != nil {
				return nil, err
			}
			views = append(views, view)
		}
	}
	return views, nil
}

func fullyPriced(recipe types.Recipe, prices types.PriceMap) bool {
	for _, ing := range recipe.Ingredients {
		if !prices.Has(ing.ItemName) {
			return false
		}
	}
	return true
}

func (c *Calculator) recipeProfit(product types.Resource, recipe types.Recipe, productPrice types.ItemPrice, prices types.PriceMap, output decimal.Decimal) (types.ProfitView, error) {
	refiningCost, err := c.RefiningCost(product)
	if err != nil {
		return types.ProfitView{}, err
	}
	focusCost, err := FocusCost(product.Tier)
	if err != nil {
		return types.ProfitView{}, err
	}

	sellPrice := decimal.NewFromInt(productPrice.SellPrice)
	revenue := sellPrice.Mul(output)

	var ingredientCost, averageCost int64
	for _, ing := range recipe.Ingredients {
		p := prices[ing.ItemName]
		ingredientCost += int64(ing.Count) * p.SellPrice
		averageCost += int64(ing.Count) * p.AveragePrice
	}
	ingredients := decimal.NewFromInt(ingredientCost)
	averages := decimal.NewFromInt(averageCost)

	cost := ingredients.Add(refiningCost).Add(marketCost)

	return types.ProfitView{
		Product:               product,
		Recipe:                recipe,
		SellPrice:             sellPrice,
		Revenue:               revenue,
		IngredientCost:        ingredients,
		AverageIngredientCost: averages,
		PercentDifference:     PercentDifference(ingredients, averages),
		Cost:                  cost,
		FocusCost:             focusCost,
		Profit:                revenue.Sub(cost),
	}, nil
}

// OutputMultiplier converts a return rate in percent into expected output per craft.
func OutputMultiplier(returnRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Div(decimal.NewFromInt(1).Sub(returnRate.Div(hundred)))
}

// NutritionConsumed is the nutrition a craft of product burns at a station.
func NutritionConsumed(product types.Resource) decimal.Decimal {
	return decimal.NewFromFloat(product.ItemValue).Mul(nutritionPerItemValue)
}

// RefiningCost is the station usage fee for one craft of product. Tier 2
// products are free to refine.
func (c *Calculator) RefiningCost(product types.Resource) (decimal.Decimal, error) {
	if product.Tier == 2 {
		return decimal.Zero, nil
	}
	fee, ok := c.usageFees[product.Subcategory]
	if !ok {
		return decimal.Zero, errors.ConfigLookup("usage fee", product.Subcategory).
			WithContext("product", product.Name)
	}
	// Fees are quoted per 100 nutrition.
	perNutrition := decimal.NewFromInt(int64(fee)).Div(hundred)
	return perNutrition.Mul(NutritionConsumed(product)), nil
}

// FocusCost returns the focus spent crafting one item of tier.
func FocusCost(tier int) (decimal.Decimal, error) {
	cost, ok := focusCostByTier[tier]
	if !ok {
		return decimal.Zero, errors.ConfigLookup("focus cost", tier)
	}
	return decimal.NewFromInt(cost), nil
}

// PercentDifference is |a-b| / max(a, b) * 100, or zero when both are zero.
func PercentDifference(a, b decimal.Decimal) decimal.Decimal {
	largest := decimal.Max(a, b)
	if largest.IsZero() {
		return decimal.Zero
	}
	return a.Sub(b).Abs().Div(largest).Mul(hundred)
}
