// Package catalog - Tradable resource catalog
// Holds the resource definitions and their refining recipes, read once from
// the game-data dump and treated as immutable for the run.
package catalog

import (
	"fmt"
	"sort"

	"refining-profit/core/types"
)

// Catalog is an ordered, name-indexed collection of resources
type Catalog struct {
	resources []types.Resource
	index     map[string]int
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		index: make(map[string]int),
	}
}

// Register adds a resource to the catalog. Names are unique.
func (c *Catalog) Register(res types.Resource) error {
	if _, ok := c.index[res.Name]; ok {
		return fmt.Errorf("duplicate resource %q", res.Name)
	}
	c.index[res.Name] = len(c.resources)
	c.resources = append(c.resources, res)
	return nil
}

// Lookup returns a resource by name
func (c *Catalog) Lookup(name string) (types.Resource, bool) {
	i, ok := c.index[name]
	if !ok {
		return types.Resource{}, false
	}
	return c.resources[i], true
}

// Resources returns all resources in registration order
func (c *Catalog) Resources() []types.Resource {
	out := make([]types.Resource, len(c.resources))
	copy(out, c.resources)
	return out
}

// Names returns all resource names in registration order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.resources))
	for i, res := range c.resources {
		names[i] = res.Name
	}
	return names
}

// Len returns the number of resources
func (c *Catalog) Len() int {
	return len(c.resources)
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	stats := Stats{BySubcategory: make(map[string]int)}
	for _, res := range c.resources {
		stats.Total++
		stats.BySubcategory[res.Subcategory]++
		stats.Recipes += len(res.Recipes)
	}
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Total         int
	Recipes       int
	BySubcategory map[string]int
}

// Subcategories returns the subcategories present, sorted
func (s Stats) Subcategories() []string {
	subs := make([]string, 0, len(s.BySubcategory))
	for sub := range s.BySubcategory {
		subs = append(subs, sub)
	}
	sort.Strings(subs)
	return subs
}
