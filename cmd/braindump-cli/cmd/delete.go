package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"braindump/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an idea",
	Long: `Delete an idea and remove it from the starred set.

Deleting an ID that is not in the room does nothing.

Examples:
  braindump-cli delete 1740821400000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()

		deleteCmd := commands.NewDeleteCommand(GetStore(), id)
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
