package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"refining-profit/core/types"
	"refining-profit/internal/errors"
)

const (
	resourceShopCategory = "resources"
	recipeElement        = "craftingrequirements"
	ingredientElement    = "craftresource"

	// Tier 1 raw materials are never refined or priced.
	minTier = 2
)

// xmlNode is a generic element of the items dump
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
}

func (n xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Load reads the items dump at path
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "open items file %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an items dump. Only unenchanted items of tier 2 and up in the
// "resources" shop category are kept; items missing one of their identifying
// attributes are skipped. A recipe or ingredient missing a required attribute fails the parse.
func Parse(r io.Reader) (*Catalog, error) {
	c := NewCatalog()
	dec := xml.NewDecoder(r)
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Parsing("read items xml", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				depth++
				continue
			}
			var node xmlNode
			if err := dec.DecodeElement(&node, &t); err != nil {
				return nil, errors.Parsing("decode item element", err)
			}
			res, ok, err := parseResource(node)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if err := c.Register(res); err != nil {
				return nil, errors.Parsing("register resource", err)
			}
		case xml.EndElement:
			depth--
		}
	}

	if err := c.Validate(DefaultValidationRules()); err != nil {
		return nil, errors.Parsing("invalid catalog", err)
	}
	return c, nil
}

func parseResource(n xmlNode) (types.Resource, bool, error) {
	category, ok := n.attr("shopcategory")
	if !ok || category != resourceShopCategory {
		return types.Resource{}, false, nil
	}
	if _, enchanted := n.attr("enchantmentlevel"); enchanted {
		return types.Resource{}, false, nil
	}

	name, okName := n.attr("uniquename")
	sub, okSub := n.attr("shopsubcategory1")
	tierRaw, okTier := n.attr("tier")
	valueRaw, okValue := n.attr("itemvalue")
	if !okName || !okSub || !okTier || !okValue {
		return types.Resource{}, false, nil
	}

	tier, err := strconv.Atoi(tierRaw)
	if err != nil {
		return types.Resource{}, false, errors.Parsing(fmt.Sprintf("%s: tier", name), err)
	}
	if tier < minTier {
		return types.Resource{}, false, nil
	}
	value, err := strconv.ParseFloat(valueRaw, 64)
	if err != nil {
		return types.Resource{}, false, errors.Parsing(fmt.Sprintf("%s: itemvalue", name), err)
	}

	res := types.Resource{
		Name:        name,
		Category:    category,
		Subcategory: sub,
		Tier:        tier,
		ItemValue:   value,
	}

	for _, child := range n.Children {
		if child.XMLName.Local != recipeElement {
			continue
		}
		recipe, err := parseRecipe(name, child)
		if err != nil {
			return types.Resource{}, false, err
		}
		res.Recipes = append(res.Recipes, recipe)
	}
	return res, true, nil
}

func parseRecipe(item string, n xmlNode) (types.Recipe, error) {
	silver, err := intAttr(n, item, "silver")
	if err != nil {
		return types.Recipe{}, err
	}

	recipe := types.Recipe{Silver: silver}
	for _, child := range n.Children {
		if child.XMLName.Local != ingredientElement {
			continue
		}
		ingName, ok := child.attr("uniquename")
		if !ok {
			return types.Recipe{}, errors.Parsing(fmt.Sprintf("%s: ingredient without uniquename", item), nil)
		}
		count, err := intAttr(child, item, "count")
		if err != nil {
			return types.Recipe{}, err
		}
		recipe.Ingredients = append(recipe.Ingredients, types.Ingredient{ItemName: ingName, Count: count})
	}
	return recipe, nil
}

func intAttr(n xmlNode, item, name string) (int, error) {
	raw, ok := n.attr(name)
	if !ok {
		return 0, errors.Parsing(fmt.Sprintf("%s: %s without %s", item, n.XMLName.Local, name), nil)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Parsing(fmt.Sprintf("%s: %s %s", item, n.XMLName.Local, name), err)
	}
	return v, nil
}
