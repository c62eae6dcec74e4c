package config

import "time"

// GameConfig holds the economy-wide timing and money settings
type GameConfig struct {
	// StartingBalance is the money a fresh game begins with
	StartingBalance int `mapstructure:"starting_balance" validate:"min=0"`

	// TickInterval is the wall-clock duration of one simulation tick
	TickInterval time.Duration `mapstructure:"tick_interval"`

	// PricingInterval is how many ticks pass between market repricing rounds
	PricingInterval int `mapstructure:"pricing_interval" validate:"omitempty,min=1"`

	// DayLength is how many ticks make one in-game day
	DayLength int `mapstructure:"day_length" validate:"omitempty,min=1"`

	// MaintenanceCostPerSlot is billed per hall slot at every day boundary
	MaintenanceCostPerSlot int `mapstructure:"maintenance_cost_per_slot" validate:"min=0"`

	// MoneyHistoryDays is how many end-of-day balance points are retained
	MoneyHistoryDays int `mapstructure:"money_history_days" validate:"omitempty,min=1"`

	// AutosaveEvery is the autosave interval in ticks; 0 disables autosave
	AutosaveEvery int `mapstructure:"autosave_every" validate:"min=0"`
}

// WarehouseConfig holds the two-sided storage settings
type WarehouseConfig struct {
	MaterialCapacity     int `mapstructure:"material_capacity" validate:"min=0"`
	ProductCapacity      int `mapstructure:"product_capacity" validate:"min=0"`
	ExpansionCostPerSlot int `mapstructure:"expansion_cost_per_slot" validate:"min=0"`
}

// FactoryConfig holds the production hall settings
type FactoryConfig struct {
	HallCapacity         int     `mapstructure:"hall_capacity" validate:"min=0"`
	ExpansionCostPerSlot int     `mapstructure:"expansion_cost_per_slot" validate:"min=0"`
	SellbackRate         float64 `mapstructure:"sellback_rate" validate:"min=0,max=1"`
}

// MarketConfig holds the pricing walk settings
type MarketConfig struct {
	// Volatility bounds the per-round price change as a fraction of the
	// current price
	Volatility float64 `mapstructure:"volatility" validate:"min=0,lt=1"`

	// PriceHistoryCap is how many price points are retained per item
	PriceHistoryCap int `mapstructure:"price_history_cap" validate:"omitempty,min=1"`

	// Seed fixes the pricing random walk; 0 means seed from the clock
	Seed int64 `mapstructure:"seed"`
}
