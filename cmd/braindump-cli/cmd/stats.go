package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"braindump/internal/application/commands"
	"braindump/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count the ideas of the room",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewStatsCommand(GetStore()).Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Room:     %s\n", result.RoomID)
		fmt.Fprintf(out, "Total:    %d\n", result.Stats.Total)
		fmt.Fprintf(out, "Starred:  %d\n", result.Stats.Starred)
		for _, c := range domain.Categories {
			fmt.Fprintf(out, "%-9s %d\n", c.Label()+":", result.Stats.ForCategory(c))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
