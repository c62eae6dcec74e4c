package simulation

import (
	"github.com/andrescamacho/factorysim-go/internal/domain/catalog"
	"github.com/andrescamacho/factorysim-go/internal/domain/ledger"
	"github.com/andrescamacho/factorysim-go/internal/domain/market"
	"github.com/andrescamacho/factorysim-go/internal/domain/player"
	"github.com/andrescamacho/factorysim-go/internal/domain/production"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
	"github.com/andrescamacho/factorysim-go/internal/domain/warehouse"
)

// State is the full serializable snapshot of a running simulation. It uses
// plain strings and ints only, so persistence adapters can map it to storage
// without importing domain types.
type State struct {
	Tick    int
	Balance int

	MaterialCapacity int
	ProductCapacity  int
	Materials        map[string]int
	Products         map[string]int

	HallCapacity  int
	NextMachineID int
	Machines      []MachineState

	Prices       []PriceState
	RepriceCount int

	MoneyHistory []MoneyPointState
	Transactions []TransactionState
}

// MachineState is the persisted form of one machine
type MachineState struct {
	ID            int
	TypeKey       string
	Status        string
	RecipeKey     string
	StartTick     int
	Progress      int
	DefaultRecipe string
	AutoStart     bool
}

// PriceState is the persisted pricing of one market item
type PriceState struct {
	Key     string
	Price   int
	History []int
}

// MoneyPointState is one persisted end-of-day balance snapshot
type MoneyPointState struct {
	Day     int
	Balance int
}

// TransactionState is the persisted form of one ledger transaction
type TransactionState struct {
	ID            string
	Tick          int
	Day           int
	Type          string
	Category      string
	Amount        int
	BalanceBefore int
	BalanceAfter  int
	Description   string
	RelatedKey    string
	Quantity      int
}

// CaptureState snapshots the complete simulation for saving
func (s *Simulation) CaptureState() State {
	state := State{
		Tick:             s.tick,
		Balance:          s.purse.Balance(),
		MaterialCapacity: s.store.Capacity(shared.SideMaterial),
		ProductCapacity:  s.store.Capacity(shared.SideProduct),
		Materials:        make(map[string]int),
		Products:         make(map[string]int),
		HallCapacity:     s.hall.Capacity(),
		NextMachineID:    s.hall.NextID(),
		RepriceCount:     s.market.RepriceCount(),
	}

	for key, qty := range s.store.Materials() {
		state.Materials[key.String()] = qty
	}
	for key, qty := range s.store.Products() {
		state.Products[key.String()] = qty
	}

	for _, m := range s.hall.Machines() {
		ms := MachineState{
			ID:            m.ID(),
			TypeKey:       m.TypeKey().String(),
			Status:        string(m.Status()),
			StartTick:     m.StartTick(),
			Progress:      m.Progress(),
			DefaultRecipe: m.DefaultRecipe().String(),
			AutoStart:     m.AutoStart(),
		}
		if recipe, ok := m.ActiveRecipe(); ok {
			ms.RecipeKey = recipe.Key().String()
		}
		state.Machines = append(state.Machines, ms)
	}

	for _, quote := range s.market.Quotes() {
		state.Prices = append(state.Prices, PriceState{
			Key:     quote.Key.String(),
			Price:   quote.Price,
			History: quote.History,
		})
	}

	for _, point := range s.money.Points() {
		state.MoneyHistory = append(state.MoneyHistory, MoneyPointState{Day: point.Day, Balance: point.Balance})
	}

	for _, t := range s.book.All() {
		state.Transactions = append(state.Transactions, TransactionState{
			ID:            t.ID().String(),
			Tick:          t.Tick(),
			Day:           t.Day(),
			Type:          string(t.TransactionType()),
			Category:      string(t.Category()),
			Amount:        t.Amount(),
			BalanceBefore: t.BalanceBefore(),
			BalanceAfter:  t.BalanceAfter(),
			Description:   t.Description(),
			RelatedKey:    t.RelatedKey(),
			Quantity:      t.Quantity(),
		})
	}
	return state
}

// NewFromState rebuilds a simulation from a saved snapshot against the
// current parameters. Saves written against an older catalog load with
// fallbacks instead of failing: stock rows for items no longer traded are
// dropped, machines of a removed type are dropped, and a machine whose saved
// recipe no longer exists comes back Idle with the stale reference cleared.
func NewFromState(params Params, state State) (*Simulation, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	materialKeys := make(map[shared.ItemKey]bool)
	productKeys := make(map[shared.ItemKey]bool)
	itemNames := make(map[shared.ItemKey]string, len(params.Listings))
	for _, listing := range params.Listings {
		if listing.Side == shared.SideMaterial {
			materialKeys[listing.Key] = true
		} else {
			productKeys[listing.Key] = true
		}
		itemNames[listing.Key] = listing.DisplayName
	}

	materials := make(map[shared.ItemKey]int)
	for raw, qty := range state.Materials {
		if key := shared.ItemKey(raw); materialKeys[key] || productKeys[key] {
			materials[key] = qty
		}
	}
	products := make(map[shared.ItemKey]int)
	for raw, qty := range state.Products {
		if key := shared.ItemKey(raw); productKeys[key] {
			products[key] = qty
		}
	}
	store, err := warehouse.ReconstructStore(state.MaterialCapacity, state.ProductCapacity, materials, products)
	if err != nil {
		return nil, err
	}
	for key := range materialKeys {
		store.RegisterMaterial(key)
	}
	for key := range productKeys {
		store.RegisterProduct(key)
	}

	mkt, err := market.NewMarket(params.Listings, params.Volatility, params.PriceHistoryCap, params.Rng)
	if err != nil {
		return nil, err
	}
	for _, price := range state.Prices {
		mkt.LoadPrice(shared.ItemKey(price.Key), price.Price, price.History)
	}
	mkt.SetRepriceCount(state.RepriceCount)

	machines := make([]*production.Machine, 0, len(state.Machines))
	for _, ms := range state.Machines {
		m, ok := restoreMachine(params.Catalog, ms)
		if !ok {
			continue
		}
		machines = append(machines, m)
	}
	hall, err := production.ReconstructHall(state.HallCapacity, params.Catalog, machines, state.NextMachineID)
	if err != nil {
		return nil, err
	}

	points := make([]player.MoneyPoint, 0, len(state.MoneyHistory))
	for _, p := range state.MoneyHistory {
		points = append(points, player.MoneyPoint{Day: p.Day, Balance: p.Balance})
	}
	money, err := player.ReconstructMoneyHistory(params.MoneyHistoryDays, points)
	if err != nil {
		return nil, err
	}

	transactions := make([]*ledger.Transaction, 0, len(state.Transactions))
	for _, ts := range state.Transactions {
		id, err := ledger.NewTransactionIDFromString(ts.ID)
		if err != nil {
			continue
		}
		txType := ledger.TransactionType(ts.Type)
		if !txType.IsValid() {
			continue
		}
		transactions = append(transactions, ledger.ReconstructTransaction(
			id, ts.Tick, ts.Day, txType, ledger.Category(ts.Category),
			ts.Amount, ts.BalanceBefore, ts.BalanceAfter,
			ts.Description, ts.RelatedKey, ts.Quantity))
	}

	return &Simulation{
		params:    params,
		tick:      state.Tick,
		purse:     player.NewPurse(state.Balance),
		store:     store,
		market:    mkt,
		hall:      hall,
		catalog:   params.Catalog,
		book:      ledger.ReconstructBook(transactions),
		money:     money,
		itemNames: itemNames,
	}, nil
}

// restoreMachine rebuilds one machine, applying the catalog-drift fallbacks.
// ok is false when the machine's type no longer exists.
func restoreMachine(cat *catalog.Catalog, ms MachineState) (*production.Machine, bool) {
	typeKey := shared.MachineTypeKey(ms.TypeKey)
	if !cat.HasMachineType(typeKey) {
		return nil, false
	}

	status := production.Status(ms.Status)
	recipe := catalog.Recipe{}
	startTick := ms.StartTick
	progress := ms.Progress
	if status == production.StatusWorking {
		r, err := cat.Recipe(typeKey, shared.RecipeKey(ms.RecipeKey))
		if err != nil {
			status = production.StatusIdle
			startTick = 0
			progress = 0
		} else {
			recipe = r
		}
	}

	defaultRecipe := shared.RecipeKey(ms.DefaultRecipe)
	if !defaultRecipe.IsZero() {
		if _, err := cat.Recipe(typeKey, defaultRecipe); err != nil {
			defaultRecipe = ""
		}
	}

	m, err := production.ReconstructMachine(ms.ID, typeKey, status, recipe, startTick, progress, defaultRecipe, ms.AutoStart)
	if err != nil {
		return nil, false
	}
	return m, true
}
