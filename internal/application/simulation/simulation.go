package simulation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factorysim-go/internal/application/common"
	"github.com/andrescamacho/factorysim-go/internal/domain/catalog"
	"github.com/andrescamacho/factorysim-go/internal/domain/ledger"
	"github.com/andrescamacho/factorysim-go/internal/domain/market"
	"github.com/andrescamacho/factorysim-go/internal/domain/player"
	"github.com/andrescamacho/factorysim-go/internal/domain/production"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
	"github.com/andrescamacho/factorysim-go/internal/domain/warehouse"
)

// Simulation is the explicit context object owning every component of the
// factory economy: warehouse, market, production hall, purse, ledger and the
// tick counter. All mutation flows through its methods, single-threaded; the
// caller decides what triggers a tick (timer, test driver, manual step).
type Simulation struct {
	params Params

	tick    int
	purse   *player.Purse
	store   *warehouse.Store
	market  *market.Market
	hall    *production.Hall
	catalog *catalog.Catalog
	book    *ledger.Book
	money   *player.MoneyHistory

	itemNames map[shared.ItemKey]string
}

// New builds a fresh simulation from parameters. Malformed parameters are
// the only fatal condition in the engine.
func New(params Params) (*Simulation, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	var materialKeys, productKeys []shared.ItemKey
	itemNames := make(map[shared.ItemKey]string, len(params.Listings))
	for _, listing := range params.Listings {
		if listing.Side == shared.SideMaterial {
			materialKeys = append(materialKeys, listing.Key)
		} else {
			productKeys = append(productKeys, listing.Key)
		}
		itemNames[listing.Key] = listing.DisplayName
	}

	store, err := warehouse.NewStore(params.MaterialCapacity, params.ProductCapacity, materialKeys, productKeys)
	if err != nil {
		return nil, err
	}

	mkt, err := market.NewMarket(params.Listings, params.Volatility, params.PriceHistoryCap, params.Rng)
	if err != nil {
		return nil, err
	}

	hall, err := production.NewHall(params.HallCapacity, params.Catalog)
	if err != nil {
		return nil, err
	}

	money, err := player.NewMoneyHistory(params.MoneyHistoryDays)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		params:    params,
		tick:      params.StartTick,
		purse:     player.NewPurse(params.StartingBalance),
		store:     store,
		market:    mkt,
		hall:      hall,
		catalog:   params.Catalog,
		book:      ledger.NewBook(),
		money:     money,
		itemNames: itemNames,
	}, nil
}

// CurrentTick returns the monotonic tick counter
func (s *Simulation) CurrentTick() int {
	return s.tick
}

// CurrentDay returns the day the counter is in
func (s *Simulation) CurrentDay() int {
	return s.tick/s.params.DayLength + 1
}

// Balance returns the purse balance (may be negative)
func (s *Simulation) Balance() int {
	return s.purse.Balance()
}

// Tick advances the simulation by one time unit. Per-tick order is fixed:
// production update (consume/produce), then market repricing on the pricing
// interval, then maintenance billing and the money snapshot on the day
// boundary. User commands apply between ticks, never within one.
func (s *Simulation) Tick(ctx context.Context) {
	logger := common.LoggerFromContext(ctx)
	s.tick++

	report := s.hall.Update(s.tick, s.store)
	for _, event := range report.Completed {
		logger.Log(common.LevelSuccess,
			fmt.Sprintf("Completed production of %d %s - machine #%d ready for next job",
				event.Recipe.OutputQuantity(), s.itemName(event.Recipe.Output()), event.MachineID),
			map[string]interface{}{"machine_id": event.MachineID, "recipe": event.Recipe.Key().String()})
	}
	for _, event := range report.AutoStarted {
		logger.Log(common.LevelInfo,
			fmt.Sprintf("Auto-started %s on machine #%d", event.Recipe.DisplayName(), event.MachineID),
			map[string]interface{}{"machine_id": event.MachineID, "recipe": event.Recipe.Key().String()})
	}
	for _, machineID := range report.Stalled {
		logger.Log(common.LevelWarning,
			fmt.Sprintf("Machine #%d cannot complete production - output warehouse full", machineID),
			map[string]interface{}{"machine_id": machineID})
	}

	if s.tick%s.params.PricingInterval == 0 {
		s.market.Reprice()
		logger.Log(common.LevelInfo, "Market prices updated", nil)
	}

	if s.tick%s.params.DayLength == 0 {
		s.billMaintenance(ctx)
		s.money.Append(s.CurrentDay(), s.purse.Balance())
	}
}

// billMaintenance charges capacity-times-rate unconditionally; debt is a
// permitted state.
func (s *Simulation) billMaintenance(ctx context.Context) {
	cost := s.hall.Capacity() * s.params.MaintenanceCostPerSlot
	if cost == 0 {
		return
	}
	before := s.purse.Balance()
	_ = s.purse.Charge(cost)
	s.record(ctx, ledger.TransactionTypeMaintenance, -cost, before,
		fmt.Sprintf("Daily maintenance for %d slots", s.hall.Capacity()), "", s.hall.Capacity())
	common.LoggerFromContext(ctx).Log(common.LevelInfo,
		fmt.Sprintf("Day %d: paid $%d maintenance", s.CurrentDay(), cost),
		map[string]interface{}{"cost": cost})
}

// record appends a ledger transaction for a purse mutation that just happened
func (s *Simulation) record(ctx context.Context, txType ledger.TransactionType, amount, balanceBefore int, description, relatedKey string, quantity int) {
	t, err := ledger.NewTransaction(
		s.tick, s.CurrentDay(), txType, amount, balanceBefore, s.purse.Balance(),
		description, relatedKey, quantity)
	if err != nil {
		// A recording failure never blocks the simulation
		common.LoggerFromContext(ctx).Log(common.LevelError,
			fmt.Sprintf("failed to record transaction: %v", err), nil)
		return
	}
	s.book.Append(t)
}

func (s *Simulation) itemName(key shared.ItemKey) string {
	if name, ok := s.itemNames[key]; ok && name != "" {
		return name
	}
	return key.String()
}

func (s *Simulation) machineTypeName(key shared.MachineTypeKey) string {
	machineType, err := s.catalog.MachineType(key)
	if err != nil {
		return key.String()
	}
	return machineType.DisplayName()
}

// Ledger returns the transaction book
func (s *Simulation) Ledger() *ledger.Book {
	return s.book
}

// MoneyHistory returns the end-of-day balance series
func (s *Simulation) MoneyHistory() []player.MoneyPoint {
	return s.money.Points()
}

// Catalog returns the machine/recipe catalog
func (s *Simulation) Catalog() *catalog.Catalog {
	return s.catalog
}
