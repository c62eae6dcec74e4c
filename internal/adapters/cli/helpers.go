package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/factorysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/factorysim-go/internal/application/common"
	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
	"github.com/andrescamacho/factorysim-go/internal/domain/catalog"
	"github.com/andrescamacho/factorysim-go/internal/domain/market"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
	"github.com/andrescamacho/factorysim-go/internal/infrastructure/config"
	"github.com/andrescamacho/factorysim-go/internal/infrastructure/database"
)

// consoleLogger prints simulation events to stdout with level prefixes
type consoleLogger struct {
	quiet bool
}

func (l *consoleLogger) Log(level, message string, metadata map[string]interface{}) {
	if l.quiet && level == common.LevelInfo {
		return
	}
	switch level {
	case common.LevelSuccess:
		fmt.Printf("✅ %s\n", message)
	case common.LevelWarning:
		fmt.Printf("⚠️  %s\n", message)
	case common.LevelError:
		fmt.Printf("❌ %s\n", message)
	default:
		fmt.Printf("   %s\n", message)
	}
}

// session bundles everything a command needs: loaded config, open database
// and the save repository
type session struct {
	cfg  *config.Config
	db   *gorm.DB
	repo *persistence.GormSaveRepository
}

func openSession() (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &session{
		cfg:  cfg,
		db:   db,
		repo: persistence.NewGormSaveRepository(db),
	}, nil
}

func (s *session) close() {
	_ = database.Close(s.db)
}

// commandContext returns the context every command runs under, with the
// console logger attached
func (s *session) commandContext() context.Context {
	return common.WithLogger(context.Background(), &consoleLogger{quiet: s.cfg.Logging.Quiet})
}

// buildParams converts the loaded configuration into simulation parameters,
// assembling the domain catalog and the market listings
func buildParams(cfg *config.Config) (simulation.Params, error) {
	cat, listings, err := buildCatalog(&cfg.Catalog)
	if err != nil {
		return simulation.Params{}, err
	}

	seed := cfg.Market.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return simulation.Params{
		StartingBalance:               cfg.Game.StartingBalance,
		PricingInterval:               cfg.Game.PricingInterval,
		DayLength:                     cfg.Game.DayLength,
		MaintenanceCostPerSlot:        cfg.Game.MaintenanceCostPerSlot,
		MoneyHistoryDays:              cfg.Game.MoneyHistoryDays,
		MaterialCapacity:              cfg.Warehouse.MaterialCapacity,
		ProductCapacity:               cfg.Warehouse.ProductCapacity,
		Volatility:                    cfg.Market.Volatility,
		PriceHistoryCap:               cfg.Market.PriceHistoryCap,
		HallCapacity:                  cfg.Factory.HallCapacity,
		HallExpansionCostPerSlot:      cfg.Factory.ExpansionCostPerSlot,
		WarehouseExpansionCostPerSlot: cfg.Warehouse.ExpansionCostPerSlot,
		SellbackRate:                  cfg.Factory.SellbackRate,
		Catalog:                       cat,
		Listings:                      listings,
		Rng:                           rand.New(rand.NewSource(seed)),
	}, nil
}

func buildCatalog(cfg *config.CatalogConfig) (*catalog.Catalog, []market.Listing, error) {
	var listings []market.Listing
	var knownItems []shared.ItemKey

	for _, item := range cfg.Materials {
		key := shared.ItemKey(item.Key)
		knownItems = append(knownItems, key)
		listings = append(listings, market.Listing{
			Key:         key,
			DisplayName: item.Name,
			Side:        shared.SideMaterial,
			BasePrice:   item.BasePrice,
		})
	}
	for _, item := range cfg.Products {
		key := shared.ItemKey(item.Key)
		knownItems = append(knownItems, key)
		listings = append(listings, market.Listing{
			Key:         key,
			DisplayName: item.Name,
			Side:        shared.SideProduct,
			BasePrice:   item.BasePrice,
		})
	}

	var types []catalog.MachineType
	for _, machineType := range cfg.MachineTypes {
		var recipes []catalog.Recipe
		for _, r := range machineType.Recipes {
			inputs := make(map[shared.ItemKey]int, len(r.Inputs))
			for item, qty := range r.Inputs {
				inputs[shared.ItemKey(item)] = qty
			}
			recipe, err := catalog.NewRecipe(
				shared.RecipeKey(r.Key), r.Name, inputs,
				shared.ItemKey(r.Output), r.OutputQty, r.Duration)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid recipe %q: %w", r.Key, err)
			}
			recipes = append(recipes, recipe)
		}
		t, err := catalog.NewMachineType(
			shared.MachineTypeKey(machineType.Key), machineType.Name, machineType.Cost, recipes)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid machine type %q: %w", machineType.Key, err)
		}
		types = append(types, t)
	}

	cat, err := catalog.NewCatalog(types, knownItems)
	if err != nil {
		return nil, nil, err
	}
	return cat, listings, nil
}

// loadSimulation restores the saved game, or starts a fresh one when the
// slot is empty
func (s *session) loadSimulation(ctx context.Context) (*simulation.Simulation, error) {
	params, err := buildParams(s.cfg)
	if err != nil {
		return nil, err
	}

	state, err := s.repo.Load(ctx, saveName)
	if err != nil {
		if err == persistence.ErrNoSave {
			return simulation.New(params)
		}
		return nil, err
	}
	return simulation.NewFromState(params, state)
}

// saveSimulation persists the current simulation into the slot
func (s *session) saveSimulation(ctx context.Context, sim *simulation.Simulation) error {
	return s.repo.Save(ctx, saveName, sim.CaptureState())
}

// withSimulation is the one-shot command harness: open the session, load the
// save, run the command, persist the result
func withSimulation(fn func(ctx context.Context, sim *simulation.Simulation) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := s.commandContext()
	sim, err := s.loadSimulation(ctx)
	if err != nil {
		return err
	}

	if err := fn(ctx, sim); err != nil {
		return err
	}
	return s.saveSimulation(ctx, sim)
}

// withSimulationReadOnly loads the save for display without writing back
func withSimulationReadOnly(fn func(ctx context.Context, sim *simulation.Simulation) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := s.commandContext()
	sim, err := s.loadSimulation(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, sim)
}

// outcomeToError keeps failed commands failing the process. The message was
// already logged through the context logger.
func outcomeToError(outcome common.Outcome) error {
	if outcome.OK {
		return nil
	}
	return fmt.Errorf("%s", outcome.Message)
}
