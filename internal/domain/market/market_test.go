package market_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factorysim-go/internal/domain/market"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

func newMarket(t *testing.T, volatility float64, historyCap int, seed int64) *market.Market {
	t.Helper()
	m, err := market.NewMarket([]market.Listing{
		{Key: "iron_ore", DisplayName: "Iron Ore", Side: shared.SideMaterial, BasePrice: 5},
		{Key: "iron_ingot", DisplayName: "Iron Ingot", Side: shared.SideProduct, BasePrice: 15},
	}, volatility, historyCap, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return m
}

func TestMarket_StartsAtBasePrice(t *testing.T) {
	m := newMarket(t, 0.1, 50, 1)

	price, err := m.Price("iron_ore")

	require.NoError(t, err)
	assert.Equal(t, 5, price)

	history, err := m.History("iron_ore")
	require.NoError(t, err)
	assert.Equal(t, []int{5}, history)
}

func TestMarket_UnknownItem(t *testing.T) {
	m := newMarket(t, 0.1, 50, 1)

	_, err := m.Price("plutonium")

	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestMarket_RepriceStaysWithinVolatilityBounds(t *testing.T) {
	m := newMarket(t, 0.1, 1000, 7)

	previous, _ := m.Price("iron_ingot")
	for i := 0; i < 500; i++ {
		m.Reprice()
		current, err := m.Price("iron_ingot")
		require.NoError(t, err)

		// One step moves at most volatility of the previous price, plus
		// rounding, and never below 1
		maxDelta := 0.1*float64(previous) + 0.5
		assert.LessOrEqual(t, math.Abs(float64(current-previous)), maxDelta)
		assert.GreaterOrEqual(t, current, 1)
		previous = current
	}
}

func TestMarket_PriceNeverDropsBelowOne(t *testing.T) {
	// High volatility and a cheap item force the floor quickly
	m, err := market.NewMarket([]market.Listing{
		{Key: "stone", DisplayName: "Stone", Side: shared.SideMaterial, BasePrice: 1},
	}, 0.9, 50, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		m.Reprice()
		price, _ := m.Price("stone")
		assert.GreaterOrEqual(t, price, 1)
	}
}

func TestMarket_HistoryIsCapped(t *testing.T) {
	m := newMarket(t, 0.1, 10, 5)

	for i := 0; i < 25; i++ {
		m.Reprice()
	}

	history, err := m.History("iron_ore")
	require.NoError(t, err)
	assert.Len(t, history, 10)

	// The newest point is the current price
	price, _ := m.Price("iron_ore")
	assert.Equal(t, price, history[len(history)-1])
}

func TestMarket_RepriceMovesEveryItemIndependently(t *testing.T) {
	m := newMarket(t, 0.1, 50, 11)

	for i := 0; i < 50; i++ {
		m.Reprice()
	}

	oreHistory, _ := m.History("iron_ore")
	ingotHistory, _ := m.History("iron_ingot")
	assert.NotEqual(t, oreHistory, ingotHistory)
	assert.Equal(t, 50, m.RepriceCount())
}

func TestMarket_SameSeedSameWalk(t *testing.T) {
	a := newMarket(t, 0.1, 50, 99)
	b := newMarket(t, 0.1, 50, 99)

	for i := 0; i < 30; i++ {
		a.Reprice()
		b.Reprice()
	}

	historyA, _ := a.History("iron_ingot")
	historyB, _ := b.History("iron_ingot")
	assert.Equal(t, historyA, historyB)
}

func TestMarket_QuotesKeepListingOrder(t *testing.T) {
	m := newMarket(t, 0.1, 50, 1)

	quotes := m.Quotes()

	require.Len(t, quotes, 2)
	assert.Equal(t, shared.ItemKey("iron_ore"), quotes[0].Key)
	assert.Equal(t, shared.ItemKey("iron_ingot"), quotes[1].Key)

	materials := m.QuotesFor(shared.SideMaterial)
	require.Len(t, materials, 1)
	assert.Equal(t, shared.ItemKey("iron_ore"), materials[0].Key)
}

func TestMarket_LoadPrice(t *testing.T) {
	m := newMarket(t, 0.1, 5, 1)

	loaded := m.LoadPrice("iron_ore", 9, []int{5, 6, 7, 8, 9, 9, 9})

	assert.True(t, loaded)
	price, _ := m.Price("iron_ore")
	assert.Equal(t, 9, price)

	// History trimmed to the cap
	history, _ := m.History("iron_ore")
	assert.Len(t, history, 5)
}

func TestMarket_LoadPriceUnknownKey(t *testing.T) {
	m := newMarket(t, 0.1, 50, 1)

	assert.False(t, m.LoadPrice("plutonium", 10, nil))
}

func TestMarket_LoadPriceClampsToFloor(t *testing.T) {
	m := newMarket(t, 0.1, 50, 1)

	m.LoadPrice("iron_ore", 0, nil)

	price, _ := m.Price("iron_ore")
	assert.Equal(t, 1, price)
}

func TestNewMarket_Validation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	listings := []market.Listing{
		{Key: "iron_ore", DisplayName: "Iron Ore", Side: shared.SideMaterial, BasePrice: 5},
	}

	_, err := market.NewMarket(listings, 1.0, 50, rng)
	assert.Error(t, err, "volatility must stay below 1")

	_, err = market.NewMarket(listings, 0.1, 0, rng)
	assert.Error(t, err, "history cap must be positive")

	_, err = market.NewMarket(listings, 0.1, 50, nil)
	assert.Error(t, err, "rng is required")

	duplicated := append(listings, listings[0])
	_, err = market.NewMarket(duplicated, 0.1, 50, rng)
	assert.Error(t, err, "duplicate listings are rejected")
}
