package simulation

import (
	"math/rand"

	"github.com/andrescamacho/factorysim-go/internal/domain/catalog"
	"github.com/andrescamacho/factorysim-go/internal/domain/market"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// Params carries everything needed to build a fresh simulation. The values
// come from configuration; the simulation itself owns no config source.
type Params struct {
	StartingBalance int
	StartTick       int

	// PricingInterval is how many ticks between market repricing rounds;
	// DayLength is how many ticks make one day
	PricingInterval int
	DayLength       int

	MaintenanceCostPerSlot int
	MoneyHistoryDays       int

	MaterialCapacity int
	ProductCapacity  int

	Volatility      float64
	PriceHistoryCap int

	HallCapacity                  int
	HallExpansionCostPerSlot      int
	WarehouseExpansionCostPerSlot int
	SellbackRate                  float64

	Catalog  *catalog.Catalog
	Listings []market.Listing

	// Rng drives market repricing; inject a seeded source for determinism
	Rng *rand.Rand
}

func (p Params) validate() error {
	if p.PricingInterval <= 0 {
		return shared.NewValidationError("pricing_interval", "pricing interval must be positive")
	}
	if p.DayLength <= 0 {
		return shared.NewValidationError("day_length", "day length must be positive")
	}
	if p.MaintenanceCostPerSlot < 0 {
		return shared.NewValidationError("maintenance_cost_per_slot", "maintenance cost cannot be negative")
	}
	if p.MoneyHistoryDays <= 0 {
		return shared.NewValidationError("money_history_days", "money history retention must be positive")
	}
	if p.SellbackRate < 0 || p.SellbackRate > 1 {
		return shared.NewValidationError("sellback_rate", "sellback rate must be in [0, 1]")
	}
	if p.HallExpansionCostPerSlot < 0 {
		return shared.NewValidationError("hall_expansion_cost", "expansion cost cannot be negative")
	}
	if p.WarehouseExpansionCostPerSlot < 0 {
		return shared.NewValidationError("warehouse_expansion_cost", "expansion cost cannot be negative")
	}
	if p.StartTick < 0 {
		return shared.NewValidationError("start_tick", "start tick cannot be negative")
	}
	if p.Catalog == nil {
		return shared.NewValidationError("catalog", "catalog cannot be nil")
	}
	if p.Rng == nil {
		return shared.NewValidationError("rng", "random source cannot be nil")
	}
	return nil
}
