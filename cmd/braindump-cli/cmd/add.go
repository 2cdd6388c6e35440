package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"braindump/internal/application/commands"
)

var addCategory string

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Capture a new idea",
	Long: `Capture a new idea at the top of the room.

Examples:
  braindump-cli add "Ship v2 before Friday" --category todo
  braindump-cli add Why is the build slow -c question
  braindump-cli -r retro add "Pairing worked well" -c insight`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		addCmd := commands.NewAddCommand(GetStore(), strings.Join(args, " "), addCategory)
		result, err := addCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "idea", "idea, todo, insight or question")
	rootCmd.AddCommand(addCmd)
}
