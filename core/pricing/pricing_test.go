package pricing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"refining-profit/core/types"
	"refining-profit/internal/errors"
)

// fakeSource records the batched requests and replays canned data
type fakeSource struct {
	quotes   []Quote
	averages []Average
	err      error

	calls       []string
	quoteNames  []string
	quoteCities []string
	avgNames    []string
	avgCities   []string
}

func (f *fakeSource) FetchQuotes(_ context.Context, names, cities []string) ([]Quote, error) {
	f.calls = append(f.calls, "quotes")
	f.quoteNames, f.quoteCities = names, cities
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func (f *fakeSource) FetchAverages(_ context.Context, names, cities []string) ([]Average, error) {
	f.calls = append(f.calls, "averages")
	f.avgNames, f.avgCities = names, cities
	return f.averages, nil
}

func res(name, sub string) types.Resource {
	return types.Resource{Name: name, Category: "resources", Subcategory: sub, Tier: 4}
}

func TestResolvePricesKeepsOnlyHomeCity(t *testing.T) {
	src := &fakeSource{
		quotes: []Quote{
			{ItemName: "T4_PLANKS", City: "Fort Sterling", SellPrice: 120},
			{ItemName: "T4_PLANKS", City: "Lymhurst", SellPrice: 90},
			{ItemName: "T4_CLOTH", City: "Lymhurst", SellPrice: 300},
			{ItemName: "T4_CLOTH", City: "Fort Sterling", SellPrice: 200},
		},
		averages: []Average{
			{ItemName: "T4_PLANKS", City: "Fort Sterling", AveragePrice: 118},
			{ItemName: "T4_PLANKS", City: "Lymhurst", AveragePrice: 95},
			{ItemName: "T4_CLOTH", City: "Lymhurst", AveragePrice: 310},
			{ItemName: "T4_CLOTH", City: "Fort Sterling", AveragePrice: 210},
		},
	}

	prices, err := NewResolver(src, WithLogger(zap.NewNop())).
		ResolvePrices(context.Background(), []types.Resource{res("T4_PLANKS", "planks"), res("T4_CLOTH", "cloth")})
	require.NoError(t, err)

	// Both cities are requested in a single batch per endpoint.
	assert.Equal(t, []string{"quotes", "averages"}, src.calls)
	assert.Equal(t, []string{"T4_PLANKS", "T4_CLOTH"}, src.quoteNames)
	assert.Equal(t, []string{"Fort Sterling", "Lymhurst"}, src.quoteCities)
	assert.Equal(t, src.quoteNames, src.avgNames)
	assert.Equal(t, src.quoteCities, src.avgCities)

	require.Len(t, prices, 2)
	assert.Equal(t, types.ItemPrice{ItemName: "T4_PLANKS", City: "Fort Sterling", SellPrice: 120, AveragePrice: 118}, prices["T4_PLANKS"])
	assert.Equal(t, types.ItemPrice{ItemName: "T4_CLOTH", City: "Lymhurst", SellPrice: 300, AveragePrice: 310}, prices["T4_CLOTH"])
}

func TestResolvePricesDropsNonHomeCityOnlyItems(t *testing.T) {
	src := &fakeSource{
		quotes:   []Quote{{ItemName: "T5_ORE", City: "Lymhurst", SellPrice: 50}},
		averages: []Average{{ItemName: "T5_ORE", City: "Lymhurst", AveragePrice: 48}},
	}

	prices, err := NewResolver(src, WithLogger(zap.NewNop())).
		ResolvePrices(context.Background(), []types.Resource{res("T5_ORE", "ore")})
	require.NoError(t, err)
	assert.False(t, prices.Has("T5_ORE"))
	assert.Equal(t, []string{"Thetford"}, src.quoteCities)
}

func TestResolvePricesJoinMissIsDroppedAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	src := &fakeSource{
		quotes: []Quote{
			{ItemName: "T4_HIDE", City: "Martlock", SellPrice: 70},
			{ItemName: "T4_LEATHER", City: "Martlock", SellPrice: 200},
		},
		averages: []Average{{ItemName: "T4_LEATHER", City: "Martlock", AveragePrice: 190}},
	}

	prices, err := NewResolver(src, WithLogger(zap.New(core))).
		ResolvePrices(context.Background(), []types.Resource{res("T4_HIDE", "hide"), res("T4_LEATHER", "leather")})
	require.NoError(t, err)

	assert.False(t, prices.Has("T4_HIDE"))
	assert.True(t, prices.Has("T4_LEATHER"))

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, int64(1), warns[0].ContextMap()["dropped"])
}

func TestResolvePricesIgnoresUnrequestedItems(t *testing.T) {
	src := &fakeSource{
		quotes:   []Quote{{ItemName: "T9_MYSTERY", City: "Thetford", SellPrice: 1}},
		averages: []Average{{ItemName: "T9_MYSTERY", City: "Thetford", AveragePrice: 1}},
	}
	prices, err := NewResolver(src, WithLogger(zap.NewNop())).
		ResolvePrices(context.Background(), []types.Resource{res("T4_ORE", "ore")})
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestResolvePricesDeduplicatesNames(t *testing.T) {
	src := &fakeSource{}
	_, err := NewResolver(src, WithLogger(zap.NewNop())).
		ResolvePrices(context.Background(), []types.Resource{res("T4_ROCK", "rock"), res("T4_ROCK", "rock")})
	require.NoError(t, err)
	assert.Equal(t, []string{"T4_ROCK"}, src.quoteNames)
}

func TestResolvePricesUnknownSubcategoryIsFatal(t *testing.T) {
	src := &fakeSource{}
	_, err := NewResolver(src, WithLogger(zap.NewNop())).
		ResolvePrices(context.Background(), []types.Resource{res("T4_RUNE", "rune")})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfigLookup))
	assert.Empty(t, src.calls)
}

func TestResolvePricesPropagatesSourceErrors(t *testing.T) {
	src := &fakeSource{err: errors.MissingField("prices[0]", "city")}
	prices, err := NewResolver(src, WithLogger(zap.NewNop())).
		ResolvePrices(context.Background(), []types.Resource{res("T4_WOOD", "wood")})
	require.Error(t, err)
	assert.Nil(t, prices)
	assert.True(t, errors.IsType(err, errors.TypeMissingField))
	assert.Equal(t, []string{"quotes"}, src.calls)
}

func TestResolvePricesEmptyInputSkipsNetwork(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("should not be called")}
	prices, err := NewResolver(src, WithLogger(zap.NewNop())).ResolvePrices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
	assert.Empty(t, src.calls)
}

func TestHomeCity(t *testing.T) {
	for sub, want := range map[string]string{
		"wood": "Fort Sterling", "planks": "Fort Sterling",
		"fiber": "Lymhurst", "cloth": "Lymhurst",
		"rock": "Bridgewatch", "stoneblock": "Bridgewatch",
		"hide": "Martlock", "leather": "Martlock",
		"ore": "Thetford", "metalbar": "Thetford",
	} {
		got, ok := HomeCity(sub)
		assert.True(t, ok, sub)
		assert.Equal(t, want, got, sub)
	}
	_, ok := HomeCity("essence")
	assert.False(t, ok)
}
