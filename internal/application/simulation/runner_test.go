package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
)

func TestRunner_StepAdvancesOneTick(t *testing.T) {
	sim := newSim(t)
	runner, err := simulation.NewRunner(sim, time.Millisecond, nil, 0)
	require.NoError(t, err)

	runner.Step(context.Background())
	runner.Step(context.Background())

	assert.Equal(t, 2, sim.CurrentTick())
}

func TestRunner_RunStopsOnCancelAndSaves(t *testing.T) {
	sim := newSim(t)

	var saved []simulation.State
	save := func(ctx context.Context, state simulation.State) error {
		saved = append(saved, state)
		return nil
	}
	runner, err := simulation.NewRunner(sim, time.Millisecond, save, 5)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = runner.Run(ctx)

	// Assert - ticks advanced, autosaves fired, one final save on shutdown
	require.NoError(t, err)
	assert.Greater(t, sim.CurrentTick(), 0)
	require.NotEmpty(t, saved)
	assert.Equal(t, sim.CurrentTick(), saved[len(saved)-1].Tick)
}

func TestNewRunner_Validation(t *testing.T) {
	sim := newSim(t)

	_, err := simulation.NewRunner(nil, time.Second, nil, 0)
	assert.Error(t, err, "simulation is required")

	_, err = simulation.NewRunner(sim, 0, nil, 0)
	assert.Error(t, err, "interval must be positive")

	_, err = simulation.NewRunner(sim, time.Second, nil, -1)
	assert.Error(t, err, "autosave interval cannot be negative")
}
