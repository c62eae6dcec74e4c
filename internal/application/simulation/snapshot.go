package simulation

import (
	"github.com/andrescamacho/factorysim-go/internal/domain/market"
	"github.com/andrescamacho/factorysim-go/internal/domain/production"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
	"github.com/andrescamacho/factorysim-go/internal/domain/warehouse"
	"github.com/andrescamacho/factorysim-go/pkg/utils"
)

// MachineView is a display-ready projection of one machine
type MachineView struct {
	ID              int
	TypeKey         string
	TypeName        string
	Status          production.Status
	RecipeKey       string
	RecipeName      string
	OutputName      string
	Progress        int
	Duration        int
	ProgressPercent int
	DefaultRecipe   string
	AutoStart       bool
}

// Snapshot is a display-ready projection of the whole simulation, taken
// between ticks. Presentation layers render from this and never touch the
// domain objects.
type Snapshot struct {
	Tick    int
	Day     int
	Balance int

	MaterialStorage warehouse.SideReport
	ProductStorage  warehouse.SideReport

	HallCapacity   int
	MachineCount   int
	AvailableSlots int
	Machines       []MachineView
	MachineCounts  production.StatusCounts

	Quotes       []market.Quote
	RepriceCount int
	Market       MarketSummary

	ProfitLoss ledgerProfitLoss
}

// MarketSummary highlights the extremes of the current price board. The
// quotes are zero values while the market tracks no item on that side.
type MarketSummary struct {
	CheapestMaterial market.Quote
	PriciestProduct  market.Quote
}

type ledgerProfitLoss struct {
	Income   int
	Expenses int
	Net      int
}

// Snapshot projects the current simulation state for presentation
func (s *Simulation) Snapshot() Snapshot {
	snapshot := Snapshot{
		Tick:            s.tick,
		Day:             s.CurrentDay(),
		Balance:         s.purse.Balance(),
		MaterialStorage: s.store.Report(shared.SideMaterial),
		ProductStorage:  s.store.Report(shared.SideProduct),
		HallCapacity:    s.hall.Capacity(),
		MachineCount:    s.hall.Count(),
		AvailableSlots:  s.hall.AvailableSlots(),
		MachineCounts:   s.hall.Counts(),
		Quotes:          s.market.Quotes(),
		RepriceCount:    s.market.RepriceCount(),
	}

	for _, q := range snapshot.Quotes {
		switch q.Side {
		case shared.SideMaterial:
			if snapshot.Market.CheapestMaterial.Key.IsZero() || q.Price < snapshot.Market.CheapestMaterial.Price {
				snapshot.Market.CheapestMaterial = q
			}
		case shared.SideProduct:
			if snapshot.Market.PriciestProduct.Key.IsZero() || q.Price > snapshot.Market.PriciestProduct.Price {
				snapshot.Market.PriciestProduct = q
			}
		}
	}

	for _, m := range s.hall.Machines() {
		snapshot.Machines = append(snapshot.Machines, s.machineView(m))
	}

	pl := s.book.ProfitLoss()
	snapshot.ProfitLoss = ledgerProfitLoss{Income: pl.Income, Expenses: pl.Expenses, Net: pl.Net}
	return snapshot
}

func (s *Simulation) machineView(m *production.Machine) MachineView {
	view := MachineView{
		ID:            m.ID(),
		TypeKey:       m.TypeKey().String(),
		TypeName:      s.machineTypeName(m.TypeKey()),
		Status:        m.Status(),
		DefaultRecipe: m.DefaultRecipe().String(),
		AutoStart:     m.AutoStart(),
	}
	if recipe, ok := m.ActiveRecipe(); ok {
		view.RecipeKey = recipe.Key().String()
		view.RecipeName = recipe.DisplayName()
		view.OutputName = s.itemName(recipe.Output())
		view.Progress = m.Progress()
		view.Duration = recipe.Duration()
		if recipe.Duration() > 0 {
			view.ProgressPercent = utils.Min(100, m.Progress()*100/recipe.Duration())
		}
	}
	return view
}
