// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// Ingredient references an item consumed by a recipe, by name only.
type Ingredient struct {
	// ItemName is the unique name of the consumed item
	ItemName string `json:"item_name"`

	// Count is how many units one craft consumes (always > 0)
	Count int `json:"count"`
}

// Recipe is one way of producing a resource.
type Recipe struct {
	// Silver is the base silver cost of the recipe
	Silver int `json:"silver"`

	// Ingredients lists the consumed items in catalog order
	Ingredients []Ingredient `json:"ingredients"`
}

// Resource is a tradable item definition from the game-data catalog.
type Resource struct {
	// Name is the unique item name, e.g. "T4_PLANKS"
	Name string `json:"name"`

	// Category is the shop category
	Category string `json:"category"`

	// Subcategory selects the home city and, for products, the usage fee
	Subcategory string `json:"subcategory"`

	// Tier is the item tier (>= 2)
	Tier int `json:"tier"`

	// ItemValue is the base item value used to derive nutrition
	ItemValue float64 `json:"item_value"`

	// Recipes lists the ways to craft this resource
	Recipes []Recipe `json:"recipes,omitempty"`
}

// HasRecipes reports whether the resource can be crafted at all.
func (r Resource) HasRecipes() bool {
	return len(r.Recipes) > 0
}
