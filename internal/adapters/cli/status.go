package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factorysim-go/internal/application/simulation"
	"github.com/andrescamacho/factorysim-go/internal/domain/production"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
	"github.com/andrescamacho/factorysim-go/internal/domain/warehouse"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the factory at a glance",
		Long: `Show the current game state: money, day, storage on both warehouse
sides, every machine with its progress, and the running profit & loss.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSimulationReadOnly(func(ctx context.Context, sim *simulation.Simulation) error {
				printStatus(sim.Snapshot())
				return nil
			})
		},
	}
}

func printStatus(snapshot simulation.Snapshot) {
	fmt.Printf("Day %d (tick %d)  Balance: $%d\n\n", snapshot.Day, snapshot.Tick, snapshot.Balance)

	fmt.Println("Warehouse")
	printSide("  Materials", snapshot.MaterialStorage)
	printSide("  Products", snapshot.ProductStorage)

	fmt.Printf("\nProduction hall: %d/%d slots (%d idle, %d working)\n",
		snapshot.MachineCount, snapshot.HallCapacity,
		snapshot.MachineCounts.Idle, snapshot.MachineCounts.Working)

	if len(snapshot.Machines) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tTYPE\tSTATUS\tJOB\tPROGRESS\tAUTO")
		for _, m := range snapshot.Machines {
			job, progress := "-", "-"
			if m.Status == production.StatusWorking {
				job = m.RecipeName
				progress = fmt.Sprintf("%d/%d (%d%%)", m.Progress, m.Duration, m.ProgressPercent)
			}
			auto := "off"
			if m.AutoStart {
				auto = "on"
				if m.DefaultRecipe != "" {
					auto = "on: " + m.DefaultRecipe
				}
			}
			fmt.Fprintf(w, "  #%d\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.TypeName, m.Status, job, progress, auto)
		}
		w.Flush()
	}

	fmt.Printf("\nProfit & loss: income $%d, expenses $%d, net $%d\n",
		snapshot.ProfitLoss.Income, snapshot.ProfitLoss.Expenses, snapshot.ProfitLoss.Net)
}

func printSide(label string, report warehouse.SideReport) {
	percent := 0
	if report.Capacity > 0 {
		percent = report.Used * 100 / report.Capacity
	}
	fmt.Printf("%s: %d/%d used (%d%%), %d free\n", label, report.Used, report.Capacity, percent, report.Available)

	keys := make([]string, 0, len(report.Items))
	for key, qty := range report.Items {
		if qty > 0 {
			keys = append(keys, key.String())
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("    %-24s %d\n", key, report.Items[shared.ItemKey(key)])
	}
}
