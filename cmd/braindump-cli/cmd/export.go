package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"braindump/internal/application/commands"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the room as JSON, YAML or TOML",
	Long: `Export the room with its stats and starred flags.

Examples:
  braindump-cli export
  braindump-cli export --format yaml
  braindump-cli -r retro export -f toml -o retro.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exportCmd := commands.NewExportCommand(GetStore(), exportFormat)
		result, err := exportCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err := cmd.OutOrStdout().Write(result.Data)
			return err
		}
		if err := os.WriteFile(exportOutput, result.Data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d ideas to %s\n", len(result.Snapshot.Ideas), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", commands.FormatJSON, "json, yaml or toml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "file to write (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
