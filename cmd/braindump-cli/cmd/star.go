package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"braindump/internal/application/commands"
)

var starCmd = &cobra.Command{
	Use:   "star <id>",
	Short: "Star or unstar an idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()

		starCmd := commands.NewStarCommand(GetStore(), id)
		result, err := starCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(starCmd)
}
