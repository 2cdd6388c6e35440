package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"braindump/internal/application/commands"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every idea in the room",
	Long: `Delete every idea and star in the room.

Warning: This operation cannot be undone.

Examples:
  braindump-cli -r retro clear
  braindump-cli -r retro clear --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := GetStore()
		n := len(s.Ideas())
		if n == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Room %s is already empty\n", s.Room())
			return nil
		}

		if !clearYes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete %d ideas from room %s? [y/N] ", n, s.Room())
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
		}

		result, err := commands.NewClearCommand(s).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(clearCmd)
}
