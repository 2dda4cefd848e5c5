// Package catalog - Catalog validation
// Ensures catalog integrity and enforces invariants.
package catalog

import (
	"errors"
	"fmt"

	"refining-profit/core/types"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(types.Resource) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateTier,
		validateItemValue,
		validateRecipes,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) error {
	var errs []error
	for _, res := range c.resources {
		for _, rule := range rules {
			if err := rule(res); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", res.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func validateTier(r types.Resource) error {
	if r.Tier < minTier {
		return fmt.Errorf("tier %d is below %d", r.Tier, minTier)
	}
	return nil
}

func validateItemValue(r types.Resource) error {
	if r.ItemValue < 0 {
		return fmt.Errorf("negative item value %v", r.ItemValue)
	}
	return nil
}

func validateRecipes(r types.Resource) error {
	for i, recipe := range r.Recipes {
		if recipe.Silver < 0 {
			return fmt.Errorf("recipe %d: negative silver cost %d", i, recipe.Silver)
		}
		for _, ing := range recipe.Ingredients {
			if ing.Count <= 0 {
				return fmt.Errorf("recipe %d: ingredient %s has count %d", i, ing.ItemName, ing.Count)
			}
		}
	}
	return nil
}
