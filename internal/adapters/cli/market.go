package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// NewMarketCommand creates the market command with subcommands
func NewMarketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Trade materials and products",
		Long: `View market prices and trade against them.

Materials are bought into the input warehouse; products are sold from the
output warehouse. Prices drift on a fixed interval while the clock runs.

Examples:
  factorysim market list
  factorysim market history iron_ore
  factorysim market buy iron_ore 20
  factorysim market buy-bulk coal 100
  factorysim market sell iron_ingot 5
  factorysim market sell iron_ingot --all`,
	}

	cmd.AddCommand(newMarketListCommand())
	cmd.AddCommand(newMarketHistoryCommand())
	cmd.AddCommand(newMarketBuyCommand())
	cmd.AddCommand(newMarketBuyBulkCommand())
	cmd.AddCommand(newMarketSellCommand())

	return cmd
}

func newMarketListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List current prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				snapshot := sim.Snapshot()
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "KEY\tNAME\tSIDE\tPRICE\tBASE")
				for _, q := range snapshot.Quotes {
					fmt.Fprintf(w, "%s\t%s\t%s\t$%d\t$%d\n",
						q.Key, q.DisplayName, q.Side, q.Price, q.BasePrice)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				fmt.Printf("\nPrices updated %d times", snapshot.RepriceCount)
				if cheapest := snapshot.Market.CheapestMaterial; !cheapest.Key.IsZero() {
					fmt.Printf("; cheapest material %s at $%d", cheapest.Key, cheapest.Price)
				}
				if priciest := snapshot.Market.PriciestProduct; !priciest.Key.IsZero() {
					fmt.Printf("; best-paying product %s at $%d", priciest.Key, priciest.Price)
				}
				fmt.Println()
				return nil
			})
		},
	}
}

func newMarketHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <item>",
		Short: "Show an item's price history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				for _, q := range sim.Snapshot().Quotes {
					if q.Key == shared.ItemKey(args[0]) {
						fmt.Printf("%s (%s), current $%d\n", q.DisplayName, q.Key, q.Price)
						for i, price := range q.History {
							fmt.Printf("  %3d  $%d\n", i+1, price)
						}
						return nil
					}
				}
				return fmt.Errorf("unknown item: %s", args[0])
			})
		},
	}
}

func newMarketBuyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <material> <quantity>",
		Short: "Buy material units at the current price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %s", args[1])
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.BuyMaterial(ctx, shared.ItemKey(args[0]), qty))
			})
		},
	}
}

func newMarketBuyBulkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buy-bulk <material> <budget>",
		Short: "Buy as many units as a budget allows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			budget, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid budget: %s", args[1])
			}
			return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
				return outcomeToError(sim.BuyMaterialBulk(ctx, shared.ItemKey(args[0]), budget))
			})
		},
	}
}

func newMarketSellCommand() *cobra.Command {
	var sellAll bool

	cmd := &cobra.Command{
		Use:   "sell <product> [quantity]",
		Short: "Sell product units at the current price",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := shared.ItemKey(args[0])

			if sellAll {
				return withSimulation(func(ctx context.Context, sim *simulation.Simulation) error {
					return outcomeToError(sim.SellAllOfProduct(ctx, key))
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
				return outcomeToError(sim.SellProduct(ctx, key, qty))
			})
		},
	}

	cmd.Flags().BoolVar(&sellAll, "all", false, "Sell the entire stock of the product")

	return cmd
}
