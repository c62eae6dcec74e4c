package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/andrescamacho/factorysim-go/internal/application/common"
	"github.com/andrescamacho/factorysim-go/internal/domain/ledger"
	"github.com/andrescamacho/factorysim-go/internal/domain/production"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
	"github.com/andrescamacho/factorysim-go/internal/domain/warehouse"
	"github.com/andrescamacho/factorysim-go/pkg/utils"
)

// BuyMaterial purchases material units at the current market price. The
// admissible quantity is clamped to warehouse space first and the purse is
// debited only for admitted units; buying less than requested is a partial
// success, admitting nothing is a failure.
func (s *Simulation) BuyMaterial(ctx context.Context, key shared.ItemKey, qty int) common.Outcome {
	if qty <= 0 {
		return s.fail(ctx, common.ReasonInvalidInput, "Purchase quantity must be positive")
	}
	side, err := s.market.SideOf(key)
	if err != nil || side != shared.SideMaterial {
		return s.fail(ctx, common.ReasonNotFound, fmt.Sprintf("Material %q not available", key))
	}
	price, _ := s.market.Price(key)

	admitted := utils.Min(qty, s.store.AvailableSpace(shared.SideMaterial))
	if admitted == 0 {
		return s.fail(ctx, common.ReasonWarehouseFull, "Warehouse is full! No materials purchased")
	}
	cost := price * admitted
	if !s.purse.CanAfford(cost) {
		return s.fail(ctx, common.ReasonInsufficientFunds,
			fmt.Sprintf("Not enough money! Need $%d, have $%d", cost, s.purse.Balance()))
	}

	before := s.purse.Balance()
	s.store.AddMaterial(key, admitted)
	_ = s.purse.Debit(cost)
	s.record(ctx, ledger.TransactionTypePurchaseMaterial, -cost, before,
		fmt.Sprintf("Bought %d %s", admitted, s.itemName(key)), key.String(), admitted)

	if admitted < qty {
		return s.warn(ctx, common.Partial(
			fmt.Sprintf("Warehouse full! Only bought %d %s for $%d", admitted, s.itemName(key), cost),
			admitted, -cost))
	}
	return s.ok(ctx, common.Success(
		fmt.Sprintf("Bought %d %s for $%d", admitted, s.itemName(key), cost), admitted, -cost))
}

// BuyMaterialBulk derives the largest quantity the budget and warehouse
// space allow and delegates to BuyMaterial.
func (s *Simulation) BuyMaterialBulk(ctx context.Context, key shared.ItemKey, maxSpend int) common.Outcome {
	if maxSpend <= 0 {
		return s.fail(ctx, common.ReasonInvalidInput, "Budget must be positive")
	}
	side, err := s.market.SideOf(key)
	if err != nil || side != shared.SideMaterial {
		return s.fail(ctx, common.ReasonNotFound, fmt.Sprintf("Material %q not available", key))
	}
	price, _ := s.market.Price(key)

	qty := utils.Min(maxSpend/price, s.store.AvailableSpace(shared.SideMaterial))
	if qty == 0 {
		return s.fail(ctx, common.ReasonWarehouseFull, "No affordable quantity fits the warehouse")
	}
	return s.BuyMaterial(ctx, key, qty)
}

// SellProduct sells product units at the current market price, capped to the
// held stock. Selling less than requested is a partial success; zero stock
// is a failure.
func (s *Simulation) SellProduct(ctx context.Context, key shared.ItemKey, qty int) common.Outcome {
	if qty <= 0 {
		return s.fail(ctx, common.ReasonInvalidInput, "Sale quantity must be positive")
	}
	side, err := s.market.SideOf(key)
	if err != nil || side != shared.SideProduct {
		return s.fail(ctx, common.ReasonNotFound, fmt.Sprintf("Product %q cannot be sold", key))
	}
	price, _ := s.market.Price(key)

	sold := s.store.RemoveProduct(key, qty)
	if sold == 0 {
		return s.fail(ctx, common.ReasonInsufficientStock, fmt.Sprintf("No %s available to sell", s.itemName(key)))
	}

	earned := price * sold
	before := s.purse.Balance()
	_ = s.purse.Credit(earned)
	s.record(ctx, ledger.TransactionTypeSellProduct, earned, before,
		fmt.Sprintf("Sold %d %s", sold, s.itemName(key)), key.String(), sold)

	if sold < qty {
		return s.warn(ctx, common.Partial(
			fmt.Sprintf("Only sold %d %s for $%d (not enough in stock)", sold, s.itemName(key), earned),
			sold, earned))
	}
	return s.ok(ctx, common.Success(
		fmt.Sprintf("Sold %d %s for $%d", sold, s.itemName(key), earned), sold, earned))
}

// SellAllOfProduct sells every held unit of a product
func (s *Simulation) SellAllOfProduct(ctx context.Context, key shared.ItemKey) common.Outcome {
	available := s.store.ProductQuantity(key)
	if available == 0 {
		return s.fail(ctx, common.ReasonInsufficientStock, fmt.Sprintf("No %s available to sell", s.itemName(key)))
	}
	return s.SellProduct(ctx, key, available)
}

// PurchaseMachine buys a machine of the given type and installs it Idle
func (s *Simulation) PurchaseMachine(ctx context.Context, typeKey shared.MachineTypeKey) common.Outcome {
	machineType, err := s.catalog.MachineType(typeKey)
	if err != nil {
		return s.fail(ctx, common.ReasonNotFound, fmt.Sprintf("Unknown machine type: %s", typeKey))
	}
	if s.hall.AvailableSlots() == 0 {
		return s.fail(ctx, common.ReasonHallFull, "Production hall is at maximum capacity")
	}
	if !s.purse.CanAfford(machineType.Cost()) {
		return s.fail(ctx, common.ReasonInsufficientFunds,
			fmt.Sprintf("Not enough money to buy %s! Cost: $%d", machineType.DisplayName(), machineType.Cost()))
	}

	machine, err := s.hall.AddMachine(typeKey)
	if err != nil {
		return s.failFromErr(ctx, err)
	}
	before := s.purse.Balance()
	_ = s.purse.Debit(machineType.Cost())
	s.record(ctx, ledger.TransactionTypePurchaseMachine, -machineType.Cost(), before,
		fmt.Sprintf("Purchased %s #%d", machineType.DisplayName(), machine.ID()), typeKey.String(), 1)

	return s.ok(ctx, common.Success(
		fmt.Sprintf("Purchased %s #%d for $%d", machineType.DisplayName(), machine.ID(), machineType.Cost()),
		machine.ID(), -machineType.Cost()))
}

// SellMachine removes an Idle machine and credits the sellback fraction of
// its purchase cost, floored to an integer. Working machines cannot be sold.
func (s *Simulation) SellMachine(ctx context.Context, machineID int) common.Outcome {
	machine, err := s.hall.Machine(machineID)
	if err != nil {
		return s.failFromErr(ctx, err)
	}
	machineType, err := s.catalog.MachineType(machine.TypeKey())
	if err != nil {
		return s.failFromErr(ctx, err)
	}
	if _, err := s.hall.RemoveMachine(machineID); err != nil {
		return s.failFromErr(ctx, err)
	}

	refund := int(math.Floor(float64(machineType.Cost()) * s.params.SellbackRate))
	before := s.purse.Balance()
	_ = s.purse.Credit(refund)
	s.record(ctx, ledger.TransactionTypeSellMachine, refund, before,
		fmt.Sprintf("Sold %s #%d", machineType.DisplayName(), machineID), machine.TypeKey().String(), 1)

	return s.ok(ctx, common.Success(
		fmt.Sprintf("Sold %s #%d for $%d", machineType.DisplayName(), machineID, refund), machineID, refund))
}

// StartProduction starts a recipe on an Idle machine. Type match, combined
// input stock and output space must all hold; a failed start changes nothing.
func (s *Simulation) StartProduction(ctx context.Context, machineID int, recipeKey shared.RecipeKey) common.Outcome {
	recipe, err := s.hall.StartProduction(machineID, recipeKey, s.store, s.tick)
	if err != nil {
		return s.failFromErr(ctx, err)
	}
	return s.ok(ctx, common.Success(
		fmt.Sprintf("Started producing %s on machine #%d", recipe.DisplayName(), machineID),
		recipe.OutputQuantity(), 0))
}

// SetDefaultRecipe configures (or clears, with an empty key) the auto-start
// recipe of a machine
func (s *Simulation) SetDefaultRecipe(ctx context.Context, machineID int, recipeKey shared.RecipeKey) common.Outcome {
	if err := s.hall.SetDefaultRecipe(machineID, recipeKey); err != nil {
		return s.failFromErr(ctx, err)
	}
	if recipeKey.IsZero() {
		return s.ok(ctx, common.Success(fmt.Sprintf("Cleared default recipe for machine #%d", machineID), 0, 0))
	}
	return s.ok(ctx, common.Success(
		fmt.Sprintf("Set default recipe for machine #%d to %s", machineID, recipeKey), 0, 0))
}

// ToggleAutoStart flips a machine's auto-start flag
func (s *Simulation) ToggleAutoStart(ctx context.Context, machineID int) common.Outcome {
	enabled, err := s.hall.ToggleAutoStart(machineID)
	if err != nil {
		return s.failFromErr(ctx, err)
	}
	state := "disabled"
	quantity := 0
	if enabled {
		state = "enabled"
		quantity = 1
	}
	return s.ok(ctx, common.Success(fmt.Sprintf("Auto-start %s for machine #%d", state, machineID), quantity, 0))
}

// ExpandWarehouse buys additional capacity on one storage side
func (s *Simulation) ExpandWarehouse(ctx context.Context, side shared.Side, slots int) common.Outcome {
	if !side.IsValid() {
		return s.fail(ctx, common.ReasonInvalidInput, fmt.Sprintf("Unknown warehouse side: %s", side))
	}
	if slots <= 0 {
		return s.fail(ctx, common.ReasonInvalidInput, "Expansion slots must be positive")
	}
	cost := slots * s.params.WarehouseExpansionCostPerSlot
	if !s.purse.CanAfford(cost) {
		return s.fail(ctx, common.ReasonInsufficientFunds,
			fmt.Sprintf("Not enough money to expand warehouse! Cost: $%d", cost))
	}
	if err := s.store.ExpandCapacity(side, slots); err != nil {
		return s.failFromErr(ctx, err)
	}
	before := s.purse.Balance()
	_ = s.purse.Debit(cost)
	if cost > 0 {
		s.record(ctx, ledger.TransactionTypeExpandWarehouse, -cost, before,
			fmt.Sprintf("Expanded %s storage by %d", side, slots), side.String(), slots)
	}
	return s.ok(ctx, common.Success(
		fmt.Sprintf("Expanded %s storage by %d slots for $%d", side, slots, cost), slots, -cost))
}

// ExpandProductionCapacity buys additional machine slots for the hall
func (s *Simulation) ExpandProductionCapacity(ctx context.Context, slots int) common.Outcome {
	if slots <= 0 {
		return s.fail(ctx, common.ReasonInvalidInput, "Expansion slots must be positive")
	}
	cost := slots * s.params.HallExpansionCostPerSlot
	if !s.purse.CanAfford(cost) {
		return s.fail(ctx, common.ReasonInsufficientFunds,
			fmt.Sprintf("Not enough money to expand capacity! Cost: $%d", cost))
	}
	if err := s.hall.ExpandCapacity(slots); err != nil {
		return s.failFromErr(ctx, err)
	}
	before := s.purse.Balance()
	_ = s.purse.Debit(cost)
	if cost > 0 {
		s.record(ctx, ledger.TransactionTypeExpandHall, -cost, before,
			fmt.Sprintf("Expanded production hall by %d slots", slots), "", slots)
	}
	return s.ok(ctx, common.Success(
		fmt.Sprintf("Expanded production hall by %d slots for $%d", slots, cost), slots, -cost))
}

// TransferProductToInput moves product units onto the material side so they
// can feed higher-tier recipes. The full quantity must be in stock; the move
// clamps to input space and a clamped move is a partial success.
func (s *Simulation) TransferProductToInput(ctx context.Context, key shared.ItemKey, qty int) common.Outcome {
	moved, err := s.store.TransferProductToInput(key, qty)
	if err != nil {
		return s.failFromErr(ctx, err)
	}
	if moved < qty {
		return s.warn(ctx, common.Partial(
			fmt.Sprintf("Transferred %d %s (input warehouse full)", moved, s.itemName(key)), moved, 0))
	}
	return s.ok(ctx, common.Success(
		fmt.Sprintf("Transferred %d %s to input warehouse", moved, s.itemName(key)), moved, 0))
}

// TransferAllProductToInput moves every held unit of a product to the
// material side
func (s *Simulation) TransferAllProductToInput(ctx context.Context, key shared.ItemKey) common.Outcome {
	available := s.store.ProductQuantity(key)
	if available == 0 {
		return s.fail(ctx, common.ReasonInsufficientStock,
			fmt.Sprintf("No %s available in output warehouse", s.itemName(key)))
	}
	return s.TransferProductToInput(ctx, key, available)
}

// Outcome plumbing: every command logs its human-readable message at the
// level matching how it went.

func (s *Simulation) ok(ctx context.Context, outcome common.Outcome) common.Outcome {
	common.LoggerFromContext(ctx).Log(common.LevelSuccess, outcome.Message, nil)
	return outcome
}

func (s *Simulation) warn(ctx context.Context, outcome common.Outcome) common.Outcome {
	common.LoggerFromContext(ctx).Log(common.LevelWarning, outcome.Message, nil)
	return outcome
}

func (s *Simulation) fail(ctx context.Context, reason common.Reason, message string) common.Outcome {
	common.LoggerFromContext(ctx).Log(common.LevelError, message, nil)
	return common.Failure(reason, message)
}

// failFromErr translates domain errors into outcome reason codes
func (s *Simulation) failFromErr(ctx context.Context, err error) common.Outcome {
	reason := common.ReasonInvalidInput

	var notFound *shared.NotFoundError
	var funds *shared.InsufficientFundsError
	var materials *warehouse.InsufficientMaterialsError
	var stock *warehouse.InsufficientStockError
	var noSpace *warehouse.NoSpaceError
	var busy *production.MachineBusyError
	var hallFull *production.HallFullError
	var noOutput *production.NoOutputSpaceError

	switch {
	case errors.As(err, &notFound):
		reason = common.ReasonNotFound
	case errors.As(err, &funds):
		reason = common.ReasonInsufficientFunds
	case errors.As(err, &materials):
		reason = common.ReasonInsufficientMaterials
	case errors.As(err, &stock):
		reason = common.ReasonInsufficientStock
	case errors.As(err, &noSpace):
		reason = common.ReasonWarehouseFull
	case errors.As(err, &busy):
		reason = common.ReasonMachineBusy
	case errors.As(err, &hallFull):
		reason = common.ReasonHallFull
	case errors.As(err, &noOutput):
		reason = common.ReasonNoOutputSpace
	}
	return s.fail(ctx, reason, err.Error())
}
