package simulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factorysim-go/internal/application/common"
	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
	"github.com/andrescamacho/factorysim-go/internal/domain/ledger"
	"github.com/andrescamacho/factorysim-go/internal/domain/production"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
	"github.com/andrescamacho/factorysim-go/test/helpers"
)

func newSim(t *testing.T) *simulation.Simulation {
	t.Helper()
	sim, err := simulation.New(helpers.TestParams(t))
	require.NoError(t, err)
	return sim
}

func newSimWithState(t *testing.T, state simulation.State) *simulation.Simulation {
	t.Helper()
	sim, err := simulation.NewFromState(helpers.TestParams(t), state)
	require.NoError(t, err)
	return sim
}

// baseState is an empty valid snapshot tests mutate for their scenario
func baseState() simulation.State {
	return simulation.State{
		Tick:             0,
		Balance:          1000,
		MaterialCapacity: 100,
		ProductCapacity:  50,
		Materials:        map[string]int{},
		Products:         map[string]int{},
		HallCapacity:     5,
		NextMachineID:    1,
	}
}

func TestNew_StartsFresh(t *testing.T) {
	sim := newSim(t)

	assert.Equal(t, 0, sim.CurrentTick())
	assert.Equal(t, 1, sim.CurrentDay())
	assert.Equal(t, 1000, sim.Balance())
	assert.Equal(t, 0, sim.Ledger().Len())
}

func TestBuyMaterial_Success(t *testing.T) {
	sim := newSim(t)
	ctx := context.Background()

	outcome := sim.BuyMaterial(ctx, "iron_ore", 10)

	require.True(t, outcome.OK)
	assert.Equal(t, common.ReasonOK, outcome.Reason)
	assert.Equal(t, 10, outcome.Quantity)
	assert.Equal(t, -50, outcome.Amount)
	assert.Equal(t, 950, sim.Balance())

	transactions := sim.Ledger().All()
	require.Len(t, transactions, 1)
	assert.Equal(t, ledger.TransactionTypePurchaseMaterial, transactions[0].TransactionType())
	assert.Equal(t, -50, transactions[0].Amount())
	assert.Equal(t, "iron_ore", transactions[0].RelatedKey())
}

func TestBuyMaterial_ClampsToSpaceAndCostsAdmittedOnly(t *testing.T) {
	// Arrange - 5 slots free, purse covers exactly the admitted units
	params := helpers.TestParams(t)
	params.MaterialCapacity = 5
	params.StartingBalance = 100
	sim, err := simulation.New(params)
	require.NoError(t, err)

	// Act - 40 requested at $5 would cost $200; only 5 fit
	outcome := sim.BuyMaterial(context.Background(), "iron_ore", 40)

	// Assert - partial buy billed at 5 x $5
	require.True(t, outcome.OK)
	assert.Equal(t, common.ReasonPartial, outcome.Reason)
	assert.Equal(t, 5, outcome.Quantity)
	assert.Equal(t, -25, outcome.Amount)
	assert.Equal(t, 75, sim.Balance())
}

func TestBuyMaterial_InsufficientFundsForAdmitted(t *testing.T) {
	params := helpers.TestParams(t)
	params.StartingBalance = 20
	sim, err := simulation.New(params)
	require.NoError(t, err)

	outcome := sim.BuyMaterial(context.Background(), "iron_ore", 10)

	assert.False(t, outcome.OK)
	assert.Equal(t, common.ReasonInsufficientFunds, outcome.Reason)
	assert.Equal(t, 20, sim.Balance())
	assert.Equal(t, 0, sim.Ledger().Len())
}

func TestBuyMaterial_FullWarehouse(t *testing.T) {
	sim := newSim(t)
	ctx := context.Background()
	require.True(t, sim.BuyMaterial(ctx, "iron_ore", 100).OK)

	outcome := sim.BuyMaterial(ctx, "coal", 1)

	assert.False(t, outcome.OK)
	assert.Equal(t, common.ReasonWarehouseFull, outcome.Reason)
}

func TestBuyMaterial_UnknownOrWrongSide(t *testing.T) {
	sim := newSim(t)
	ctx := context.Background()

	assert.Equal(t, common.ReasonNotFound, sim.BuyMaterial(ctx, "plutonium", 1).Reason)
	// Products cannot be bought
	assert.Equal(t, common.ReasonNotFound, sim.BuyMaterial(ctx, "iron_ingot", 1).Reason)
}

func TestBuyMaterialBulk_DerivesQuantityFromBudget(t *testing.T) {
	sim := newSim(t)

	// $27 at $5 per unit buys 5
	outcome := sim.BuyMaterialBulk(context.Background(), "iron_ore", 27)

	require.True(t, outcome.OK)
	assert.Equal(t, 5, outcome.Quantity)
	assert.Equal(t, 975, sim.Balance())
}

func TestSellProduct_Success(t *testing.T) {
	state := baseState()
	state.Products["iron_ingot"] = 5
	sim := newSimWithState(t, state)

	outcome := sim.SellProduct(context.Background(), "iron_ingot", 3)

	require.True(t, outcome.OK)
	assert.Equal(t, 45, outcome.Amount)
	assert.Equal(t, 1045, sim.Balance())

	transactions := sim.Ledger().All()
	require.Len(t, transactions, 1)
	assert.Equal(t, ledger.TransactionTypeSellProduct, transactions[0].TransactionType())
}

func TestSellProduct_CapsAtStock(t *testing.T) {
	state := baseState()
	state.Products["iron_ingot"] = 5
	sim := newSimWithState(t, state)

	outcome := sim.SellProduct(context.Background(), "iron_ingot", 10)

	require.True(t, outcome.OK)
	assert.Equal(t, common.ReasonPartial, outcome.Reason)
	assert.Equal(t, 5, outcome.Quantity)
	assert.Equal(t, 1075, sim.Balance())
}

func TestSellProduct_NoStock(t *testing.T) {
	sim := newSim(t)

	outcome := sim.SellProduct(context.Background(), "iron_ingot", 1)

	assert.False(t, outcome.OK)
	assert.Equal(t, common.ReasonInsufficientStock, outcome.Reason)
}

func TestSellAllOfProduct(t *testing.T) {
	state := baseState()
	state.Products["wooden_plank"] = 4
	sim := newSimWithState(t, state)

	outcome := sim.SellAllOfProduct(context.Background(), "wooden_plank")

	require.True(t, outcome.OK)
	assert.Equal(t, 4, outcome.Quantity)
	assert.Equal(t, 1032, sim.Balance())
}

func TestPurchaseMachine(t *testing.T) {
	sim := newSim(t)

	outcome := sim.PurchaseMachine(context.Background(), "smelter")

	require.True(t, outcome.OK)
	assert.Equal(t, 800, sim.Balance())
	assert.Equal(t, 1, sim.Snapshot().MachineCount)

	transactions := sim.Ledger().All()
	require.Len(t, transactions, 1)
	assert.Equal(t, ledger.TransactionTypePurchaseMachine, transactions[0].TransactionType())
	assert.Equal(t, -200, transactions[0].Amount())
}

func TestPurchaseMachine_HallFull(t *testing.T) {
	params := helpers.TestParams(t)
	params.HallCapacity = 1
	sim, err := simulation.New(params)
	require.NoError(t, err)
	require.True(t, sim.PurchaseMachine(context.Background(), "smelter").OK)

	outcome := sim.PurchaseMachine(context.Background(), "smelter")

	assert.False(t, outcome.OK)
	assert.Equal(t, common.ReasonHallFull, outcome.Reason)
	assert.Equal(t, 800, sim.Balance())
}

func TestPurchaseMachine_InsufficientFunds(t *testing.T) {
	params := helpers.TestParams(t)
	params.StartingBalance = 150
	sim, err := simulation.New(params)
	require.NoError(t, err)

	outcome := sim.PurchaseMachine(context.Background(), "smelter")

	assert.False(t, outcome.OK)
	assert.Equal(t, common.ReasonInsufficientFunds, outcome.Reason)
	assert.Equal(t, 0, sim.Snapshot().MachineCount)
}

func TestSellMachine_RefundsSellbackRate(t *testing.T) {
	sim := newSim(t)
	ctx := context.Background()
	require.True(t, sim.PurchaseMachine(ctx, "smelter").OK)

	outcome := sim.SellMachine(ctx, 1)

	// floor(200 * 0.7) = 140
	require.True(t, outcome.OK)
	assert.Equal(t, 140, outcome.Amount)
	assert.Equal(t, 940, sim.Balance())
	assert.Equal(t, 0, sim.Snapshot().MachineCount)
}

func TestSellMachine_WorkingMachineRefused(t *testing.T) {
	sim := newSim(t)
	ctx := context.Background()
	require.True(t, sim.BuyMaterial(ctx, "iron_ore", 4).OK)
	require.True(t, sim.BuyMaterial(ctx, "coal", 2).OK)
	require.True(t, sim.PurchaseMachine(ctx, "smelter").OK)
	require.True(t, sim.StartProduction(ctx, 1, "iron_ingot").OK)

	outcome := sim.SellMachine(ctx, 1)

	assert.False(t, outcome.OK)
	assert.Equal(t, common.ReasonMachineBusy, outcome.Reason)
	assert.Equal(t, 1, sim.Snapshot().MachineCount)
}

func TestStartProduction_RunsToCompletion(t *testing.T) {
	// Arrange
	sim := newSim(t)
	ctx := context.Background()
	require.True(t, sim.BuyMaterial(ctx, "iron_ore", 4).OK)
	require.True(t, sim.BuyMaterial(ctx, "coal", 2).OK)
	require.True(t, sim.PurchaseMachine(ctx, "smelter").OK)

	outcome := sim.StartProduction(ctx, 1, "iron_ingot")
	require.True(t, outcome.OK)

	// Act - the recipe takes 20 ticks
	for i := 0; i < 19; i++ {
		sim.Tick(ctx)
	}
	snapshot := sim.Snapshot()
	require.Equal(t, production.StatusWorking, snapshot.Machines[0].Status)
	assert.Equal(t, 95, snapshot.Machines[0].ProgressPercent)

	sim.Tick(ctx)

	// Assert - batch deposited, machine idle
	snapshot = sim.Snapshot()
	assert.Equal(t, production.StatusIdle, snapshot.Machines[0].Status)
	assert.Equal(t, 1, snapshot.ProductStorage.Items["iron_ingot"])
	// 2 of 4 ore and 1 of 2 coal were consumed
	assert.Equal(t, 2, snapshot.MaterialStorage.Items["iron_ore"])
	assert.Equal(t, 1, snapshot.MaterialStorage.Items["coal"])
}

func TestStartProduction_UnknownMachine(t *testing.T) {
	sim := newSim(t)

	outcome := sim.StartProduction(context.Background(), 42, "iron_ingot")

	assert.False(t, outcome.OK)
	assert.Equal(t, common.ReasonNotFound, outcome.Reason)
}

func TestTick_RepricesOnInterval(t *testing.T) {
	sim := newSim(t)
	ctx := context.Background()
	before := sim.Snapshot().Quotes

	for i := 0; i < 29; i++ {
		sim.Tick(ctx)
	}
	unchanged := sim.Snapshot().Quotes
	assert.Equal(t, before, unchanged, "prices hold between repricing rounds")

	sim.Tick(ctx)

	after := sim.Snapshot().Quotes
	for _, q := range after {
		assert.Len(t, q.History, 2, "one walk step appended for %s", q.Key)
		assert.GreaterOrEqual(t, q.Price, 1)
	}
}

func TestTick_BillsMaintenanceAtDayBoundary(t *testing.T) {
	sim := newSim(t)
	ctx := context.Background()

	for i := 0; i < 59; i++ {
		sim.Tick(ctx)
	}
	assert.Equal(t, 1000, sim.Balance(), "no maintenance before the boundary")
	assert.Empty(t, sim.MoneyHistory())

	sim.Tick(ctx)

	// 5 hall slots x $5
	assert.Equal(t, 975, sim.Balance())
	transactions := sim.Ledger().All()
	require.Len(t, transactions, 1)
	assert.Equal(t, ledger.TransactionTypeMaintenance, transactions[0].TransactionType())
	assert.Equal(t, -25, transactions[0].Amount())

	points := sim.MoneyHistory()
	require.Len(t, points, 1)
	assert.Equal(t, 975, points[0].Balance)
}

func TestTick_MaintenanceMayCauseDebt(t *testing.T) {
	params := helpers.TestParams(t)
	params.StartingBalance = 10
	sim, err := simulation.New(params)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		sim.Tick(ctx)
	}

	assert.Equal(t, -15, sim.Balance())
}

func TestExpandWarehouse(t *testing.T) {
	params := helpers.TestParams(t)
	params.StartingBalance = 6000
	sim, err := simulation.New(params)
	require.NoError(t, err)

	outcome := sim.ExpandWarehouse(context.Background(), shared.SideProduct, 10)

	require.True(t, outcome.OK)
	assert.Equal(t, -5000, outcome.Amount)
	assert.Equal(t, 1000, sim.Balance())
	assert.Equal(t, 60, sim.Snapshot().ProductStorage.Capacity)
	assert.Equal(t, 100, sim.Snapshot().MaterialStorage.Capacity, "other side unchanged")
}

func TestExpandWarehouse_InsufficientFunds(t *testing.T) {
	params := helpers.TestParams(t)
	params.StartingBalance = 100
	sim, err := simulation.New(params)
	require.NoError(t, err)

	outcome := sim.ExpandWarehouse(context.Background(), shared.SideMaterial, 1)

	assert.False(t, outcome.OK)
	assert.Equal(t, common.ReasonInsufficientFunds, outcome.Reason)
	assert.Equal(t, 100, sim.Snapshot().MaterialStorage.Capacity)
}

func TestExpandProductionCapacity_RaisesMaintenance(t *testing.T) {
	params := helpers.TestParams(t)
	params.StartingBalance = 10000
	sim, err := simulation.New(params)
	require.NoError(t, err)
	ctx := context.Background()

	outcome := sim.ExpandProductionCapacity(ctx, 1)
	require.True(t, outcome.OK)
	assert.Equal(t, 6, sim.Snapshot().HallCapacity)

	balanceBefore := sim.Balance()
	for i := 0; i < 60; i++ {
		sim.Tick(ctx)
	}

	// 6 slots x $5
	assert.Equal(t, balanceBefore-30, sim.Balance())
}

func TestTransferProductToInput(t *testing.T) {
	state := baseState()
	state.Products["iron_ingot"] = 4
	sim := newSimWithState(t, state)

	outcome := sim.TransferProductToInput(context.Background(), "iron_ingot", 4)

	require.True(t, outcome.OK)
	snapshot := sim.Snapshot()
	assert.Equal(t, 4, snapshot.MaterialStorage.Items["iron_ingot"])
	assert.Equal(t, 0, snapshot.ProductStorage.Items["iron_ingot"])
}

func TestProductsFeedHigherTierRecipes(t *testing.T) {
	// Steel needs ingots, which sit on the product side after smelting;
	// the combined availability lets the chain run without a transfer
	state := baseState()
	state.Products["iron_ingot"] = 2
	sim := newSimWithState(t, state)
	ctx := context.Background()

	require.True(t, sim.BuyMaterial(ctx, "coal", 2).OK)
	require.True(t, sim.PurchaseMachine(ctx, "smelter").OK)

	outcome := sim.StartProduction(ctx, 1, "steel_bar")

	require.True(t, outcome.OK)
	snapshot := sim.Snapshot()
	assert.Equal(t, production.StatusWorking, snapshot.Machines[0].Status)
	assert.Equal(t, 0, snapshot.ProductStorage.Items["iron_ingot"])
	assert.Equal(t, 0, snapshot.MaterialStorage.Items["coal"])
}

func TestCaptureAndRestore_RoundTrip(t *testing.T) {
	// Arrange - a game in a nontrivial state
	sim := newSim(t)
	ctx := context.Background()
	require.True(t, sim.BuyMaterial(ctx, "iron_ore", 10).OK)
	require.True(t, sim.BuyMaterial(ctx, "coal", 5).OK)
	require.True(t, sim.PurchaseMachine(ctx, "smelter").OK)
	require.True(t, sim.StartProduction(ctx, 1, "iron_ingot").OK)
	require.True(t, sim.SetDefaultRecipe(ctx, 1, "iron_ingot").OK)
	require.True(t, sim.ToggleAutoStart(ctx, 1).OK)
	for i := 0; i < 65; i++ {
		sim.Tick(ctx)
	}

	// Act
	state := sim.CaptureState()
	restored := newSimWithState(t, state)

	// Assert - the restored game is indistinguishable
	assert.Equal(t, sim.CurrentTick(), restored.CurrentTick())
	assert.Equal(t, sim.CurrentDay(), restored.CurrentDay())
	assert.Equal(t, sim.Balance(), restored.Balance())
	assert.Equal(t, sim.Ledger().Len(), restored.Ledger().Len())
	assert.Equal(t, sim.MoneyHistory(), restored.MoneyHistory())

	original := sim.Snapshot()
	reloaded := restored.Snapshot()
	assert.Equal(t, original.MaterialStorage, reloaded.MaterialStorage)
	assert.Equal(t, original.ProductStorage, reloaded.ProductStorage)
	assert.Equal(t, original.Machines, reloaded.Machines)
	assert.Equal(t, original.Quotes, reloaded.Quotes)
}

func TestRestore_ContinuesCorrectly(t *testing.T) {
	// A machine mid-job keeps its progress across a save/load
	sim := newSim(t)
	ctx := context.Background()
	require.True(t, sim.BuyMaterial(ctx, "iron_ore", 2).OK)
	require.True(t, sim.BuyMaterial(ctx, "coal", 1).OK)
	require.True(t, sim.PurchaseMachine(ctx, "smelter").OK)
	require.True(t, sim.StartProduction(ctx, 1, "iron_ingot").OK)
	for i := 0; i < 10; i++ {
		sim.Tick(ctx)
	}

	restored := newSimWithState(t, sim.CaptureState())
	for i := 0; i < 10; i++ {
		restored.Tick(ctx)
	}

	snapshot := restored.Snapshot()
	assert.Equal(t, production.StatusIdle, snapshot.Machines[0].Status)
	assert.Equal(t, 1, snapshot.ProductStorage.Items["iron_ingot"])
}

func TestRestore_DropsMachinesOfRemovedTypes(t *testing.T) {
	state := baseState()
	state.NextMachineID = 3
	state.Machines = []simulation.MachineState{
		{ID: 1, TypeKey: "obsolete_press", Status: "IDLE"},
		{ID: 2, TypeKey: "smelter", Status: "IDLE"},
	}

	sim := newSimWithState(t, state)

	snapshot := sim.Snapshot()
	require.Len(t, snapshot.Machines, 1)
	assert.Equal(t, 2, snapshot.Machines[0].ID)
}

func TestRestore_ResetsMachineWithRemovedRecipe(t *testing.T) {
	state := baseState()
	state.NextMachineID = 2
	state.Machines = []simulation.MachineState{
		{ID: 1, TypeKey: "smelter", Status: "WORKING", RecipeKey: "gold_ingot", StartTick: 5, Progress: 3, DefaultRecipe: "gold_ingot", AutoStart: true},
	}

	sim := newSimWithState(t, state)

	snapshot := sim.Snapshot()
	require.Len(t, snapshot.Machines, 1)
	assert.Equal(t, production.StatusIdle, snapshot.Machines[0].Status)
	assert.Empty(t, snapshot.Machines[0].DefaultRecipe)
	assert.True(t, snapshot.Machines[0].AutoStart)
}

func TestRestore_SkipsUnknownInventoryItems(t *testing.T) {
	state := baseState()
	state.Materials["unobtainium"] = 10
	state.Materials["iron_ore"] = 5

	sim := newSimWithState(t, state)

	snapshot := sim.Snapshot()
	assert.Equal(t, 5, snapshot.MaterialStorage.Used)
	assert.Equal(t, 5, snapshot.MaterialStorage.Items["iron_ore"])
}

func TestRestore_KeepsSavedPrices(t *testing.T) {
	state := baseState()
	state.Prices = []simulation.PriceState{
		{Key: "iron_ore", Price: 9, History: []int{5, 7, 9}},
		{Key: "discontinued", Price: 3, History: []int{3}},
	}
	state.RepriceCount = 2

	sim := newSimWithState(t, state)

	for _, q := range sim.Snapshot().Quotes {
		if q.Key == "iron_ore" {
			assert.Equal(t, 9, q.Price)
			assert.Equal(t, []int{5, 7, 9}, q.History)
		}
	}
}

func TestNew_RejectsBadParams(t *testing.T) {
	params := helpers.TestParams(t)
	params.DayLength = 0

	_, err := simulation.New(params)

	assert.Error(t, err)
}
