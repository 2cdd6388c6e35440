package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"braindump/internal/adapters/editor"
	"braindump/internal/application"
	"braindump/internal/application/commands"
)

var editCategory string

var editCmd = &cobra.Command{
	Use:   "edit <id> [text...]",
	Short: "Rewrite an idea",
	Long: `Rewrite the text of an idea and optionally change its category.

Without text the idea is opened in $EDITOR.

Examples:
  braindump-cli edit 1740821400000 "Ship v2 on Monday"
  braindump-cli edit 1740821400000 --category todo
  braindump-cli edit 1740821400000`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s := GetStore()

		current, ok := s.Idea(id)
		if !ok {
			return &application.IdeaNotFoundError{RoomID: s.Room(), ID: id}
		}

		text := strings.Join(args[1:], " ")
		if text == "" && editCategory != "" {
			text = current.Text
		}
		if text == "" {
			text, err = editor.NewOpener().EditText(current.Text)
			if err != nil {
				return err
			}
			if text == current.Text {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
		}

		editCmd := commands.NewEditCommand(s, id, text, editCategory)
		result, err := editCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "new category (default keeps the current one)")
	rootCmd.AddCommand(editCmd)
}
