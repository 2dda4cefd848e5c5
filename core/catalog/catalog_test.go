package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refining-profit/core/types"
	"refining-profit/internal/errors"
)

func TestLoadKeepsUnenchantedResources(t *testing.T) {
	c, err := Load("testdata/items.xml")
	require.NoError(t, err)

	assert.Equal(t, []string{"T2_WOOD", "T3_WOOD", "T2_PLANKS", "T3_PLANKS"}, c.Names())

	planks, ok := c.Lookup("T3_PLANKS")
	require.True(t, ok)
	assert.Equal(t, types.Resource{
		Name:        "T3_PLANKS",
		Category:    "resources",
		Subcategory: "planks",
		Tier:        3,
		ItemValue:   8,
		Recipes: []types.Recipe{{
			Silver: 0,
			Ingredients: []types.Ingredient{
				{ItemName: "T3_WOOD", Count: 2},
				{ItemName: "T2_PLANKS", Count: 1},
			},
		}},
	}, planks)

	wood, ok := c.Lookup("T2_WOOD")
	require.True(t, ok)
	assert.False(t, wood.HasRecipes())

	stats := c.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Recipes)
	assert.Equal(t, []string{"planks", "wood"}, stats.Subcategories())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/nope.xml")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestParseRecipeWithoutSilverFails(t *testing.T) {
	doc := `<items>
	  <simpleitem uniquename="T2_CLOTH" tier="2" shopcategory="resources" shopsubcategory1="cloth" itemvalue="4">
	    <craftingrequirements><craftresource uniquename="T2_FIBER" count="1"/></craftingrequirements>
	  </simpleitem>
	</items>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
	assert.Contains(t, err.Error(), "silver")
}

func TestParseIngredientWithoutCountFails(t *testing.T) {
	doc := `<items>
	  <simpleitem uniquename="T2_CLOTH" tier="2" shopcategory="resources" shopsubcategory1="cloth" itemvalue="4">
	    <craftingrequirements silver="0"><craftresource uniquename="T2_FIBER"/></craftingrequirements>
	  </simpleitem>
	</items>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
}

func TestParseSkipsTierOneResources(t *testing.T) {
	doc := `<items>
	  <simpleitem uniquename="T1_WOOD" tier="1" shopcategory="resources" shopsubcategory1="wood" itemvalue="1"/>
	  <simpleitem uniquename="T1_ROCK" tier="1" shopcategory="resources" shopsubcategory1="rock" itemvalue="1"/>
	  <simpleitem uniquename="T2_WOOD" tier="2" shopcategory="resources" shopsubcategory1="wood" itemvalue="2"/>
	  <simpleitem uniquename="T2_PLANKS" tier="2" shopcategory="resources" shopsubcategory1="planks" itemvalue="4">
	    <craftingrequirements silver="0"><craftresource uniquename="T2_WOOD" count="1"/></craftingrequirements>
	  </simpleitem>
	</items>`
	c, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"T2_WOOD", "T2_PLANKS"}, c.Names())

	_, ok := c.Lookup("T1_WOOD")
	assert.False(t, ok)
	planks, ok := c.Lookup("T2_PLANKS")
	require.True(t, ok)
	assert.Len(t, planks.Recipes, 1)
}

func TestValidateRejectsRegisteredLowTier(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(types.Resource{Name: "T1_HIDE", Subcategory: "hide", Tier: 1}))

	err := c.Validate(DefaultValidationRules())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "T1_HIDE")
}

func TestParseRejectsDuplicates(t *testing.T) {
	doc := `<items>
	  <simpleitem uniquename="T2_ROCK" tier="2" shopcategory="resources" shopsubcategory1="rock" itemvalue="1"/>
	  <simpleitem uniquename="T2_ROCK" tier="2" shopcategory="resources" shopsubcategory1="rock" itemvalue="1"/>
	</items>`
	_, err := Parse(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestResourcesReturnsCopy(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(types.Resource{Name: "T2_HIDE", Subcategory: "hide", Tier: 2}))

	list := c.Resources()
	list[0].Name = "changed"

	res, ok := c.Lookup("T2_HIDE")
	assert.True(t, ok)
	assert.Equal(t, "T2_HIDE", res.Name)
	assert.Equal(t, 1, c.Len())
}
