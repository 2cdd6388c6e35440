package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"braindump/internal/application/commands"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List rooms or create a new room ID",
}

var roomsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rooms that have stored ideas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rooms, err := commands.NewListRoomsCommand(GetBackend().Persistence).Execute(context.Background())
		if err != nil {
			return err
		}

		current := GetStore().Room()
		for _, r := range rooms {
			marker := " "
			if r == current {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, r)
		}
		return nil
	},
}

var roomsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Print a fresh random room ID",
	Long: `Print a fresh random room ID to share with others.

Examples:
  braindump-cli -r "$(braindump-cli rooms new)" add "First idea"`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"store": "none"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), commands.NewRoomID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roomsCmd)
	roomsCmd.AddCommand(roomsListCmd)
	roomsCmd.AddCommand(roomsNewCmd)
}
