package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// NewWarehouseCommand creates the warehouse command with subcommands
func NewWarehouseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Manage the two-sided warehouse",
		Long: `Manage storage.

The warehouse has an input side for materials and an output side for
products, each with its own capacity. Products can be moved to the input
side to feed higher-tier recipes.

Examples:
  factorysim warehouse status
  factorysim warehouse expand material 50
  factorysim warehouse transfer iron_ingot 4
  factorysim warehouse transfer steel_bar --all`,
	}

	cmd.AddCommand(newWarehouseStatusCommand())
	cmd.AddCommand(newWarehouseExpandCommand())
	cmd.AddCommand(newWarehouseTransferCommand())

	return cmd
}

func newWarehouseStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show both storage sides",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				snapshot := sim.Snapshot()
				printSide("Materials", snapshot.MaterialStorage)
				printSide("Products", snapshot.ProductStorage)
				return nil
			})
		},
	}
}

func newWarehouseExpandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <material|product> <slots>",
		Short: "Buy additional capacity on one side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			side, err := shared.ParseSide(args[0])
			if err != nil {
				return err
			}
			slots, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid slot count: %s", args[1])
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.ExpandWarehouse(ctx, side, slots))
			})
		},
	}
}

func newWarehouseTransferCommand() *cobra.Command {
	var transferAll bool

	cmd := &cobra.Command{
		Use:   "transfer <product> [quantity]",
		Short: "Move products to the input side for further production",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := shared.ItemKey(args[0])

			if transferAll {
				return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
					return outcomeToError(sim.TransferAllProductToInput(ctx, key))
				})
			}
			if len(args) < 2 {
				return fmt.Errorf("specify a quantity or use --all")
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %s", args[1])
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.TransferProductToInput(ctx, key, qty))
			})
		},
	}

	cmd.Flags().BoolVar(&transferAll, "all", false, "Transfer the entire stock of the product")

	return cmd
}
