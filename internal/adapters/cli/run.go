package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation clock",
		Long: `Run the simulation in real time, one tick per configured interval.

The game autosaves on the configured tick interval and saves once more on
shutdown. Stop with Ctrl-C. With --ticks the clock advances that many ticks
immediately instead of running in real time.

Examples:
  factorysim run
  factorysim run --ticks 120`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(ticks)
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 0, "Advance this many ticks at once and exit")

	return cmd
}

func runSimulation(ticks int) error {
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

	if ticks > 0 {
		for i := 0; i < ticks; i++ {
			sim.Tick(ctx)
		}
		fmt.Printf("Advanced %d ticks (now tick %d, day %d)\n", ticks, sim.CurrentTick(), sim.CurrentDay())
		return s.saveSimulation(ctx, sim)
	}

	save := func(ctx context.Context, state simulation.State) error {
		return s.repo.Save(ctx, saveName, state)
	}
	runner, err := simulation.NewRunner(sim, s.cfg.Game.TickInterval, save, s.cfg.Game.AutosaveEvery)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Running from tick %d (day %d), one tick per %s. Ctrl-C to stop.\n",
		sim.CurrentTick(), sim.CurrentDay(), s.cfg.Game.TickInterval)
	return runner.Run(runCtx)
}
