package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Game defaults
	if cfg.Game.StartingBalance == 0 {
		cfg.Game.StartingBalance = 1000
	}
	if cfg.Game.TickInterval == 0 {
		cfg.Game.TickInterval = 1 * time.Second
	}
	if cfg.Game.PricingInterval == 0 {
		cfg.Game.PricingInterval = 30
	}
	if cfg.Game.DayLength == 0 {
		cfg.Game.DayLength = 60
	}
	if cfg.Game.MaintenanceCostPerSlot == 0 {
		cfg.Game.MaintenanceCostPerSlot = 5
	}
	if cfg.Game.MoneyHistoryDays == 0 {
		cfg.Game.MoneyHistoryDays = 30
	}
	if cfg.Game.AutosaveEvery == 0 {
		cfg.Game.AutosaveEvery = 60
	}

	// Warehouse defaults
	if cfg.Warehouse.MaterialCapacity == 0 {
		cfg.Warehouse.MaterialCapacity = 100
	}
	if cfg.Warehouse.ProductCapacity == 0 {
		cfg.Warehouse.ProductCapacity = 50
	}
	if cfg.Warehouse.ExpansionCostPerSlot == 0 {
		cfg.Warehouse.ExpansionCostPerSlot = 500
	}

	// Factory defaults
	if cfg.Factory.HallCapacity == 0 {
		cfg.Factory.HallCapacity = 5
	}
	if cfg.Factory.ExpansionCostPerSlot == 0 {
		cfg.Factory.ExpansionCostPerSlot = 500
	}
	if cfg.Factory.SellbackRate == 0 {
		cfg.Factory.SellbackRate = 0.7
	}

	// Market defaults
	if cfg.Market.Volatility == 0 {
		cfg.Market.Volatility = 0.1
	}
	if cfg.Market.PriceHistoryCap == 0 {
		cfg.Market.PriceHistoryCap = 50
	}

	// Catalog defaults: the full starter economy
	if len(cfg.Catalog.Materials) == 0 {
		cfg.Catalog.Materials = defaultMaterials()
	}
	if len(cfg.Catalog.Products) == 0 {
		cfg.Catalog.Products = defaultProducts()
	}
	if len(cfg.Catalog.MachineTypes) == 0 {
		cfg.Catalog.MachineTypes = defaultMachineTypes()
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "factorysim.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "factorysim"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "factorysim"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

func defaultMaterials() []ItemConfig {
	return []ItemConfig{
		{Key: "iron_ore", Name: "Iron Ore", BasePrice: 5},
		{Key: "wood", Name: "Wood", BasePrice: 3},
		{Key: "coal", Name: "Coal", BasePrice: 4},
		{Key: "copper_ore", Name: "Copper Ore", BasePrice: 7},
		{Key: "stone", Name: "Stone", BasePrice: 2},
	}
}

func defaultProducts() []ItemConfig {
	return []ItemConfig{
		{Key: "iron_ingot", Name: "Iron Ingot", BasePrice: 15},
		{Key: "wooden_plank", Name: "Wooden Plank", BasePrice: 8},
		{Key: "copper_wire", Name: "Copper Wire", BasePrice: 20},
		{Key: "steel_bar", Name: "Steel Bar", BasePrice: 25},
		{Key: "concrete_block", Name: "Concrete Block", BasePrice: 12},
		{Key: "electronic_component", Name: "Electronic Component", BasePrice: 75},
		{Key: "reinforced_concrete", Name: "Reinforced Concrete", BasePrice: 45},
	}
}

func defaultMachineTypes() []MachineTypeConfig {
	return []MachineTypeConfig{
		{
			Key: "smelter", Name: "Smelter", Cost: 200,
			Recipes: []RecipeConfig{
				{
					Key: "iron_ingot", Name: "Iron Ingot",
					Inputs: map[string]int{"iron_ore": 2, "coal": 1},
					Output: "iron_ingot", OutputQty: 1, Duration: 20,
				},
				{
					Key: "steel_bar", Name: "Steel Bar",
					Inputs: map[string]int{"iron_ingot": 2, "coal": 2},
					Output: "steel_bar", OutputQty: 1, Duration: 40,
				},
			},
		},
		{
			Key: "workbench", Name: "Workbench", Cost: 150,
			Recipes: []RecipeConfig{
				{
					Key: "wooden_plank", Name: "Wooden Plank",
					Inputs: map[string]int{"wood": 1},
					Output: "wooden_plank", OutputQty: 2, Duration: 10,
				},
				{
					Key: "concrete_block", Name: "Concrete Block",
					Inputs: map[string]int{"stone": 3, "wood": 1},
					Output: "concrete_block", OutputQty: 1, Duration: 30,
				},
			},
		},
		{
			Key: "wire_mill", Name: "Wire Mill", Cost: 300,
			Recipes: []RecipeConfig{
				{
					Key: "copper_wire", Name: "Copper Wire",
					Inputs: map[string]int{"copper_ore": 1},
					Output: "copper_wire", OutputQty: 3, Duration: 16,
				},
			},
		},
		{
			Key: "assembly_line", Name: "Assembly Line", Cost: 500,
			Recipes: []RecipeConfig{
				{
					Key: "electronic_component", Name: "Electronic Component",
					Inputs: map[string]int{"copper_wire": 2, "steel_bar": 1},
					Output: "electronic_component", OutputQty: 1, Duration: 50,
				},
				{
					Key: "reinforced_concrete", Name: "Reinforced Concrete",
					Inputs: map[string]int{"concrete_block": 2, "steel_bar": 1},
					Output: "reinforced_concrete", OutputQty: 1, Duration: 60,
				},
			},
		},
	}
}
