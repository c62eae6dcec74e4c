package simulation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/factorysim-go/internal/application/common"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// SaveFunc persists a simulation snapshot. Runners call it on the autosave
// interval and once more on shutdown.
type SaveFunc func(ctx context.Context, state State) error

// Runner drives the simulation clock in real time. One tick fires per
// interval, paced by a rate limiter so a slow save or log sink delays ticks
// instead of letting them pile up.
type Runner struct {
	sim           *Simulation
	limiter       *rate.Limiter
	save          SaveFunc
	autosaveEvery int
}

// NewRunner creates a runner ticking once per interval. save may be nil when
// persistence is disabled; autosaveEvery is measured in ticks and 0 disables
// periodic saves.
func NewRunner(sim *Simulation, tickInterval time.Duration, save SaveFunc, autosaveEvery int) (*Runner, error) {
	if sim == nil {
		return nil, shared.NewValidationError("simulation", "simulation cannot be nil")
	}
	if tickInterval <= 0 {
		return nil, shared.NewValidationError("tick_interval", "tick interval must be positive")
	}
	if autosaveEvery < 0 {
		return nil, shared.NewValidationError("autosave_every", "autosave interval cannot be negative")
	}
	return &Runner{
		sim:           sim,
		limiter:       rate.NewLimiter(rate.Every(tickInterval), 1),
		save:          save,
		autosaveEvery: autosaveEvery,
	}, nil
}

// Step advances the simulation by exactly one tick, without pacing
func (r *Runner) Step(ctx context.Context) {
	r.sim.Tick(ctx)
}

// Run ticks the simulation until the context is cancelled, then writes a
// final save. The context error itself is not reported; cancellation is the
// normal way to stop.
func (r *Runner) Run(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return r.finalSave(ctx)
		}
		r.sim.Tick(ctx)

		if r.save != nil && r.autosaveEvery > 0 && r.sim.CurrentTick()%r.autosaveEvery == 0 {
			if err := r.save(ctx, r.sim.CaptureState()); err != nil {
				logger.Log(common.LevelError, fmt.Sprintf("autosave failed: %v", err),
					map[string]interface{}{"tick": r.sim.CurrentTick()})
			}
		}
	}
}

func (r *Runner) finalSave(ctx context.Context) error {
	if r.save == nil {
		return nil
	}
	// The run context is already cancelled; give the save its own deadline
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := r.save(saveCtx, r.sim.CaptureState()); err != nil {
		return fmt.Errorf("saving on shutdown: %w", err)
	}
	return nil
}
