package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	saveName   string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "factorysim",
		Short: "Factory simulator - build production chains and turn a profit",
		Long: `Factory simulator: buy raw materials, run them through machines and sell
the products for more than they cost you. The market drifts, the warehouse
is finite and every machine slot costs maintenance at the end of the day.

State lives in a save slot; every command loads it, applies, and saves.

Examples:
  factorysim run
  factorysim status
  factorysim market buy iron_ore 20
  factorysim machine buy smelter
  factorysim machine start 1 iron_ingot
  factorysim market sell iron_ingot --all
  factorysim ledger report profit-loss`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&saveName, "save", "default",
		"Save slot name")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewMarketCommand())
	rootCmd.AddCommand(NewMachineCommand())
	rootCmd.AddCommand(NewWarehouseCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewGameCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
