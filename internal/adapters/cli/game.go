package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Manage save slots",
		Long: `Manage the saved game.

Examples:
  factorysim game reset
  factorysim game reset --force
  factorysim --save experiment game reset`,
	}

	cmd.AddCommand(newGameResetCommand())

	return cmd
}

func newGameResetCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase the save slot and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()
			ctx := s.commandContext()

			exists, err := s.repo.Exists(ctx, saveName)
			if err != nil {
				return err
			}
			if !exists {
				fmt.Printf("Save slot %q is already empty\n", saveName)
				return nil
			}

			if !force {
				fmt.Printf("Erase save slot %q? [y/N] ", saveName)
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := s.repo.Delete(ctx, saveName); err != nil {
				return err
			}
			fmt.Printf("Save slot %q erased. The next command starts a fresh game.\n", saveName)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
