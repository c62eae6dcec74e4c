package helpers

import (
	"math/rand"
	"testing"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
	"github.com/andrescamacho/factorysim-go/internal/domain/catalog"
	"github.com/andrescamacho/factorysim-go/internal/domain/market"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// TestCatalog builds a small two-machine economy: a smelter turning ore and
// coal into ingots (and ingots into steel), and a workbench turning wood
// into planks. The steel recipe consumes a product, covering the chained
// production path.
func TestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	ingot, err := catalog.NewRecipe("iron_ingot", "Iron Ingot",
		map[shared.ItemKey]int{"iron_ore": 2, "coal": 1}, "iron_ingot", 1, 20)
	if err != nil {
		t.Fatalf("failed to build recipe: %v", err)
	}
	steel, err := catalog.NewRecipe("steel_bar", "Steel Bar",
		map[shared.ItemKey]int{"iron_ingot": 2, "coal": 2}, "steel_bar", 1, 40)
	if err != nil {
		t.Fatalf("failed to build recipe: %v", err)
	}
	plank, err := catalog.NewRecipe("wooden_plank", "Wooden Plank",
		map[shared.ItemKey]int{"wood": 1}, "wooden_plank", 2, 10)
	if err != nil {
		t.Fatalf("failed to build recipe: %v", err)
	}

	smelter, err := catalog.NewMachineType("smelter", "Smelter", 200, []catalog.Recipe{ingot, steel})
	if err != nil {
		t.Fatalf("failed to build machine type: %v", err)
	}
	workbench, err := catalog.NewMachineType("workbench", "Workbench", 150, []catalog.Recipe{plank})
	if err != nil {
		t.Fatalf("failed to build machine type: %v", err)
	}

	cat, err := catalog.NewCatalog(
		[]catalog.MachineType{smelter, workbench},
		[]shared.ItemKey{"iron_ore", "coal", "wood", "iron_ingot", "wooden_plank", "steel_bar"})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return cat
}

// TestListings returns the market listings matching TestCatalog
func TestListings() []market.Listing {
	return []market.Listing{
		{Key: "iron_ore", DisplayName: "Iron Ore", Side: shared.SideMaterial, BasePrice: 5},
		{Key: "coal", DisplayName: "Coal", Side: shared.SideMaterial, BasePrice: 4},
		{Key: "wood", DisplayName: "Wood", Side: shared.SideMaterial, BasePrice: 3},
		{Key: "iron_ingot", DisplayName: "Iron Ingot", Side: shared.SideProduct, BasePrice: 15},
		{Key: "wooden_plank", DisplayName: "Wooden Plank", Side: shared.SideProduct, BasePrice: 8},
		{Key: "steel_bar", DisplayName: "Steel Bar", Side: shared.SideProduct, BasePrice: 25},
	}
}

// TestParams returns simulation parameters over TestCatalog with a fixed
// random seed
func TestParams(t *testing.T) simulation.Params {
	t.Helper()

	return simulation.Params{
		StartingBalance:               1000,
		PricingInterval:               30,
		DayLength:                     60,
		MaintenanceCostPerSlot:        5,
		MoneyHistoryDays:              30,
		MaterialCapacity:              100,
		ProductCapacity:               50,
		Volatility:                    0.1,
		PriceHistoryCap:               50,
		HallCapacity:                  5,
		HallExpansionCostPerSlot:      500,
		WarehouseExpansionCostPerSlot: 500,
		SellbackRate:                  0.7,
		Catalog:                       TestCatalog(t),
		Listings:                      TestListings(),
		Rng:                           rand.New(rand.NewSource(42)),
	}
}
