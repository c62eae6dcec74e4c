package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
	"github.com/andrescamacho/factorysim-go/internal/domain/ledger"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Financial ledger operations",
		Long: `View and analyze the transaction ledger.

Every money movement produces one transaction: material purchases, product
sales, machine deals, expansions and daily maintenance.

Categories:
  MATERIAL_COSTS         - Material purchases
  PRODUCT_REVENUE        - Product sales
  EQUIPMENT_INVESTMENTS  - Machine purchases and expansions
  EQUIPMENT_RESALE       - Machine sales
  FACILITY_COSTS         - Daily maintenance

Examples:
  factorysim ledger list --limit 20
  factorysim ledger list --category FACILITY_COSTS
  factorysim ledger report profit-loss
  factorysim ledger report cash-flow
  factorysim ledger money-history`,
	}

	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerReportCommand())
	cmd.AddCommand(newLedgerMoneyHistoryCommand())

	return cmd
}

func newLedgerListCommand() *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				return runLedgerList(sim, category, limit)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to show")

	return cmd
}

func runLedgerList(sim *simulation.Simulation, category string, limit int) error {
	transactions := sim.Ledger().All()
	if category != "" {
		transactions = sim.Ledger().ByCategory(ledger.Category(category))
	}

	// Newest first
	for i, j := 0, len(transactions)-1; i < j; i, j = i+1, j-1 {
		transactions[i], transactions[j] = transactions[j], transactions[i]
	}
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tTICK\tTYPE\tAMOUNT\tBALANCE\tDESCRIPTION")
	for _, t := range transactions {
		fmt.Fprintf(w, "%d\t%d\t%s\t$%d\t$%d\t%s\n",
			t.Day(), t.Tick(), t.TransactionType(), t.Amount(), t.BalanceAfter(), t.Description())
	}
	return w.Flush()
}

func newLedgerReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate financial reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "profit-loss",
		Short: "Show income, expenses and net over the whole game",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				pl := sim.Ledger().ProfitLoss()
				fmt.Printf("Income:   $%d\n", pl.Income)
				fmt.Printf("Expenses: $%d\n", pl.Expenses)
				fmt.Printf("Net:      $%d\n", pl.Net)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cash-flow",
		Short: "Show signed totals per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				flow := sim.Ledger().CashFlowByCategory()

				categories := make([]string, 0, len(flow))
				for category := range flow {
					categories = append(categories, string(category))
				}
				sort.Strings(categories)

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "CATEGORY\tNET")
				for _, category := range categories {
					fmt.Fprintf(w, "%s\t$%d\n", category, flow[ledger.Category(category)])
				}
				return w.Flush()
			})
		},
	})

	return cmd
}

func newLedgerMoneyHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "money-history",
		Short: "Show the end-of-day balance series",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				points := sim.MoneyHistory()
				if len(points) == 0 {
					fmt.Println("No completed days yet")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DAY\tBALANCE")
				for _, p := range points {
					fmt.Fprintf(w, "%d\t$%d\n", p.Day, p.Balance)
				}
				return w.Flush()
			})
		},
	}
}
