package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
)

// ErrNoSave is returned by Load when the slot holds no saved game
var ErrNoSave = errors.New("no saved game")

// GormSaveRepository persists simulation snapshots using GORM. A save is
// written atomically: all rows of the slot are replaced inside one database
// transaction, so a crash mid-save never leaves a mixed snapshot.
type GormSaveRepository struct {
	db *gorm.DB
}

// NewGormSaveRepository creates a new GORM save repository
func NewGormSaveRepository(db *gorm.DB) *GormSaveRepository {
	return &GormSaveRepository{db: db}
}

// Save replaces the slot's content with the given snapshot
func (r *GormSaveRepository) Save(ctx context.Context, saveName string, state simulation.State) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteSlot(tx, saveName); err != nil {
			return err
		}

		gameState := &GameStateModel{
			SaveName:         saveName,
			Tick:             state.Tick,
			Balance:          state.Balance,
			MaterialCapacity: state.MaterialCapacity,
			ProductCapacity:  state.ProductCapacity,
			HallCapacity:     state.HallCapacity,
			NextMachineID:    state.NextMachineID,
			RepriceCount:     state.RepriceCount,
		}
		if err := tx.Create(gameState).Error; err != nil {
			return fmt.Errorf("failed to save game state: %w", err)
		}

		var items []InventoryItemModel
		for key, qty := range state.Materials {
			items = append(items, InventoryItemModel{SaveName: saveName, Side: "MATERIAL", ItemKey: key, Quantity: qty})
		}
		for key, qty := range state.Products {
			items = append(items, InventoryItemModel{SaveName: saveName, Side: "PRODUCT", ItemKey: key, Quantity: qty})
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to save inventory: %w", err)
			}
		}

		var machines []MachineModel
		for _, m := range state.Machines {
			machines = append(machines, MachineModel{
				SaveName:      saveName,
				MachineID:     m.ID,
				TypeKey:       m.TypeKey,
				Status:        m.Status,
				RecipeKey:     m.RecipeKey,
				StartTick:     m.StartTick,
				Progress:      m.Progress,
				DefaultRecipe: m.DefaultRecipe,
				AutoStart:     m.AutoStart,
			})
		}
		if len(machines) > 0 {
			if err := tx.Create(&machines).Error; err != nil {
				return fmt.Errorf("failed to save machines: %w", err)
			}
		}

		var prices []PriceModel
		for _, p := range state.Prices {
			historyJSON, err := json.Marshal(p.History)
			if err != nil {
				return fmt.Errorf("failed to marshal price history for %s: %w", p.Key, err)
			}
			prices = append(prices, PriceModel{
				SaveName:    saveName,
				ItemKey:     p.Key,
				Price:       p.Price,
				HistoryJSON: string(historyJSON),
			})
		}
		if len(prices) > 0 {
			if err := tx.Create(&prices).Error; err != nil {
				return fmt.Errorf("failed to save prices: %w", err)
			}
		}

		var points []MoneyHistoryModel
		for _, p := range state.MoneyHistory {
			points = append(points, MoneyHistoryModel{SaveName: saveName, Day: p.Day, Balance: p.Balance})
		}
		if len(points) > 0 {
			if err := tx.Create(&points).Error; err != nil {
				return fmt.Errorf("failed to save money history: %w", err)
			}
		}

		var transactions []TransactionModel
		for _, t := range state.Transactions {
			transactions = append(transactions, TransactionModel{
				SaveName:      saveName,
				TransactionID: t.ID,
				Tick:          t.Tick,
				Day:           t.Day,
				Type:          t.Type,
				Category:      t.Category,
				Amount:        t.Amount,
				BalanceBefore: t.BalanceBefore,
				BalanceAfter:  t.BalanceAfter,
				Description:   t.Description,
				RelatedKey:    t.RelatedKey,
				Quantity:      t.Quantity,
			})
		}
		if len(transactions) > 0 {
			if err := tx.Create(&transactions).Error; err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}
		}

		return nil
	})
}

// Load reads the slot's snapshot. Returns ErrNoSave when the slot is empty.
func (r *GormSaveRepository) Load(ctx context.Context, saveName string) (simulation.State, error) {
	db := r.db.WithContext(ctx)

	var gameState GameStateModel
	if err := db.Where("save_name = ?", saveName).First(&gameState).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return simulation.State{}, ErrNoSave
		}
		return simulation.State{}, fmt.Errorf("failed to load game state: %w", err)
	}

	state := simulation.State{
		Tick:             gameState.Tick,
		Balance:          gameState.Balance,
		MaterialCapacity: gameState.MaterialCapacity,
		ProductCapacity:  gameState.ProductCapacity,
		HallCapacity:     gameState.HallCapacity,
		NextMachineID:    gameState.NextMachineID,
		RepriceCount:     gameState.RepriceCount,
		Materials:        make(map[string]int),
		Products:         make(map[string]int),
	}

	var items []InventoryItemModel
	if err := db.Where("save_name = ?", saveName).Find(&items).Error; err != nil {
		return simulation.State{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	for _, item := range items {
		if item.Side == "MATERIAL" {
			state.Materials[item.ItemKey] = item.Quantity
		} else {
			state.Products[item.ItemKey] = item.Quantity
		}
	}

	var machines []MachineModel
	if err := db.Where("save_name = ?", saveName).Order("machine_id").Find(&machines).Error; err != nil {
		return simulation.State{}, fmt.Errorf("failed to load machines: %w", err)
	}
	for _, m := range machines {
		state.Machines = append(state.Machines, simulation.MachineState{
			ID:            m.MachineID,
			TypeKey:       m.TypeKey,
			Status:        m.Status,
			RecipeKey:     m.RecipeKey,
			StartTick:     m.StartTick,
			Progress:      m.Progress,
			DefaultRecipe: m.DefaultRecipe,
			AutoStart:     m.AutoStart,
		})
	}

	var prices []PriceModel
	if err := db.Where("save_name = ?", saveName).Find(&prices).Error; err != nil {
		return simulation.State{}, fmt.Errorf("failed to load prices: %w", err)
	}
	for _, p := range prices {
		var history []int
		if p.HistoryJSON != "" {
			// A corrupt history row only loses the chart, not the price
			if err := json.Unmarshal([]byte(p.HistoryJSON), &history); err != nil {
				history = nil
			}
		}
		state.Prices = append(state.Prices, simulation.PriceState{
			Key:     p.ItemKey,
			Price:   p.Price,
			History: history,
		})
	}

	var points []MoneyHistoryModel
	if err := db.Where("save_name = ?", saveName).Order("day").Find(&points).Error; err != nil {
		return simulation.State{}, fmt.Errorf("failed to load money history: %w", err)
	}
	for _, p := range points {
		state.MoneyHistory = append(state.MoneyHistory, simulation.MoneyPointState{Day: p.Day, Balance: p.Balance})
	}

	var transactions []TransactionModel
	if err := db.Where("save_name = ?", saveName).Order("seq").Find(&transactions).Error; err != nil {
		return simulation.State{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	for _, t := range transactions {
		state.Transactions = append(state.Transactions, simulation.TransactionState{
			ID:            t.TransactionID,
			Tick:          t.Tick,
			Day:           t.Day,
			Type:          t.Type,
			Category:      t.Category,
			Amount:        t.Amount,
			BalanceBefore: t.BalanceBefore,
			BalanceAfter:  t.BalanceAfter,
			Description:   t.Description,
			RelatedKey:    t.RelatedKey,
			Quantity:      t.Quantity,
		})
	}

	return state, nil
}

// Exists reports whether the slot holds a saved game
func (r *GormSaveRepository) Exists(ctx context.Context, saveName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&GameStateModel{}).
		Where("save_name = ?", saveName).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check save slot: %w", err)
	}
	return count > 0, nil
}

// Delete erases the slot, resetting the game
func (r *GormSaveRepository) Delete(ctx context.Context, saveName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteSlot(tx, saveName)
	})
}

func deleteSlot(tx *gorm.DB, saveName string) error {
	for _, model := range []interface{}{
		&GameStateModel{}, &InventoryItemModel{}, &MachineModel{},
		&PriceModel{}, &MoneyHistoryModel{}, &TransactionModel{},
	} {
		if err := tx.Where("save_name = ?", saveName).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear save slot: %w", err)
		}
	}
	return nil
}
