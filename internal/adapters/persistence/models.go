package persistence

import (
	"time"
)

// GameStateModel represents the game_states table: one row per save slot
// holding the scalar state of a simulation.
type GameStateModel struct {
	SaveName         string    `gorm:"column:save_name;primaryKey"`
	Tick             int       `gorm:"column:tick;not null"`
	Balance          int       `gorm:"column:balance;not null"`
	MaterialCapacity int       `gorm:"column:material_capacity;not null"`
	ProductCapacity  int       `gorm:"column:product_capacity;not null"`
	HallCapacity     int       `gorm:"column:hall_capacity;not null"`
	NextMachineID    int       `gorm:"column:next_machine_id;not null"`
	RepriceCount     int       `gorm:"column:reprice_count;not null"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (GameStateModel) TableName() string {
	return "game_states"
}

// InventoryItemModel represents the inventory_items table: one row per
// (save, side, item) with a nonzero or registered quantity
type InventoryItemModel struct {
	SaveName string `gorm:"column:save_name;primaryKey"`
	Side     string `gorm:"column:side;primaryKey"`
	ItemKey  string `gorm:"column:item_key;primaryKey"`
	Quantity int    `gorm:"column:quantity;not null"`
}

func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// MachineModel represents the machines table
type MachineModel struct {
	SaveName      string `gorm:"column:save_name;primaryKey"`
	MachineID     int    `gorm:"column:machine_id;primaryKey"`
	TypeKey       string `gorm:"column:type_key;not null"`
	Status        string `gorm:"column:status;not null"`
	RecipeKey     string `gorm:"column:recipe_key"`
	StartTick     int    `gorm:"column:start_tick;not null;default:0"`
	Progress      int    `gorm:"column:progress;not null;default:0"`
	DefaultRecipe string `gorm:"column:default_recipe"`
	AutoStart     bool   `gorm:"column:auto_start;not null;default:false"`
}

func (MachineModel) TableName() string {
	return "machines"
}

// PriceModel represents the market_prices table
type PriceModel struct {
	SaveName    string `gorm:"column:save_name;primaryKey"`
	ItemKey     string `gorm:"column:item_key;primaryKey"`
	Price       int    `gorm:"column:price;not null"`
	HistoryJSON string `gorm:"column:history_json;type:text"` // JSON array as text
}

func (PriceModel) TableName() string {
	return "market_prices"
}

// MoneyHistoryModel represents the money_history table
type MoneyHistoryModel struct {
	SaveName string `gorm:"column:save_name;primaryKey"`
	Day      int    `gorm:"column:day;primaryKey"`
	Balance  int    `gorm:"column:balance;not null"`
}

func (MoneyHistoryModel) TableName() string {
	return "money_history"
}

// TransactionModel represents the transactions table. Seq preserves the
// recording order independently of tick, which several transactions share.
type TransactionModel struct {
	Seq           int    `gorm:"column:seq;primaryKey;autoIncrement"`
	SaveName      string `gorm:"column:save_name;index;not null"`
	TransactionID string `gorm:"column:transaction_id;not null"`
	Tick          int    `gorm:"column:tick;not null"`
	Day           int    `gorm:"column:day;not null"`
	Type          string `gorm:"column:type;not null"`
	Category      string `gorm:"column:category;not null"`
	Amount        int    `gorm:"column:amount;not null"`
	BalanceBefore int    `gorm:"column:balance_before;not null"`
	BalanceAfter  int    `gorm:"column:balance_after;not null"`
	Description   string `gorm:"column:description;type:text"`
	RelatedKey    string `gorm:"column:related_key"`
	Quantity      int    `gorm:"column:quantity;not null;default:0"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}
