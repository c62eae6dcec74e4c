package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// NewMachineCommand creates the machine command with subcommands
func NewMachineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "machine",
		Short: "Buy, sell and operate machines",
		Long: `Manage the production hall.

Machines occupy hall slots and run one recipe at a time. A working machine
cannot be sold; selling an idle one refunds part of its purchase cost.
Auto-start machines pick up their default recipe whenever materials and
output space allow.

Examples:
  factorysim machine types
  factorysim machine buy smelter
  factorysim machine start 1 iron_ingot
  factorysim machine set-recipe 1 iron_ingot
  factorysim machine auto 1
  factorysim machine sell 2
  factorysim machine expand 3`,
	}

	cmd.AddCommand(newMachineTypesCommand())
	cmd.AddCommand(newMachineBuyCommand())
	cmd.AddCommand(newMachineSellCommand())
	cmd.AddCommand(newMachineStartCommand())
	cmd.AddCommand(newMachineSetRecipeCommand())
	cmd.AddCommand(newMachineAutoCommand())
	cmd.AddCommand(newMachineExpandCommand())

	return cmd
}

func newMachineTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List purchasable machine types and their recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "TYPE\tCOST\tRECIPE\tINPUTS\tOUTPUT\tTICKS")
				for _, machineType := range sim.Catalog().MachineTypes() {
					for _, recipe := range machineType.Recipes() {
						var inputs []string
						for item, qty := range recipe.Inputs() {
							inputs = append(inputs, fmt.Sprintf("%dx %s", qty, item))
						}
						fmt.Fprintf(w, "%s\t$%d\t%s\t%s\t%dx %s\t%d\n",
							machineType.Key(), machineType.Cost(), recipe.Key(),
							strings.Join(inputs, ", "),
							recipe.OutputQuantity(), recipe.Output(), recipe.Duration())
					}
				}
				return w.Flush()
			})
		},
	}
}

func newMachineBuyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <type>",
		Short: "Buy a machine and install it in the hall",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.PurchaseMachine(ctx, shared.MachineTypeKey(args[0])))
			})
		},
	}
}

func newMachineSellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sell <id>",
		Short: "Sell an idle machine for part of its cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMachineID(args[0])
			if err != nil {
				return err
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.SellMachine(ctx, id))
			})
		},
	}
}

func newMachineStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id> <recipe>",
		Short: "Start a recipe on an idle machine",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMachineID(args[0])
			if err != nil {
				return err
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.StartProduction(ctx, id, shared.RecipeKey(args[1])))
			})
		},
	}
}

func newMachineSetRecipeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-recipe <id> [recipe]",
		Short: "Set (or clear) a machine's default recipe for auto-start",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMachineID(args[0])
			if err != nil {
				return err
			}
			var recipe shared.RecipeKey
			if len(args) == 2 {
				recipe = shared.RecipeKey(args[1])
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.SetDefaultRecipe(ctx, id, recipe))
			})
		},
	}
}

func newMachineAutoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auto <id>",
		Short: "Toggle a machine's auto-start flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMachineID(args[0])
			if err != nil {
				return err
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.ToggleAutoStart(ctx, id))
			})
		},
	}
}

func newMachineExpandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <slots>",
		Short: "Buy additional hall slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid slot count: %s", args[0])
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.ExpandProductionCapacity(ctx, slots))
			})
		},
	}
}

func parseMachineID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid machine id: %s", arg)
	}
	return id, nil
}
