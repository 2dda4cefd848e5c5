package pricing

// homeCities maps a subcategory to the city whose market is authoritative for it.
// Raw materials share a city with the goods refined from them.
var homeCities = map[string]string{
	"wood":       "Fort Sterling",
	"planks":     "Fort Sterling",
	"fiber":      "Lymhurst",
	"cloth":      "Lymhurst",
	"rock":       "Bridgewatch",
	"stoneblock": "Bridgewatch",
	"hide":       "Martlock",
	"leather":    "Martlock",
	"ore":        "Thetford",
	"metalbar":   "Thetford",
}

// HomeCity returns the home city of a subcategory
func HomeCity(subcategory string) (string, bool) {
	city, ok := homeCities[subcategory]
	return city, ok
}

