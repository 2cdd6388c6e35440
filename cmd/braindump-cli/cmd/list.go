package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"braindump/internal/application/commands"
)

var (
	listFilter string
	listSearch string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the ideas of the room, newest first",
	Long: `List the ideas of the room, newest first.

Starred ideas are marked with *.

Examples:
  braindump-cli list
  braindump-cli list --filter starred
  braindump-cli list -f todo -s release`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		listCmd := commands.NewListCommand(GetStore(), listFilter, listSearch)
		result, err := listCmd.Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Entries) == 0 {
			fmt.Fprintf(out, "No ideas in room %s.\n", result.RoomID)
			return nil
		}
		for _, e := range result.Entries {
			printEntry(out, e)
		}
		return nil
	},
}

func printEntry(out io.Writer, e commands.Entry) {
	star := " "
	if e.Starred {
		star = "*"
	}
	fmt.Fprintf(out, "%s %d  %-8s  %s  (%s)\n",
		star, e.ID, e.Category, e.Text, e.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "all, starred, idea, todo, insight or question")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive text to look for")
	rootCmd.AddCommand(listCmd)
}
