package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vivekkundariya/catalogseed/internal/application/queries"
	"github.com/vivekkundariya/catalogseed/internal/cli/shared"
	"github.com/vivekkundariya/catalogseed/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every record in the games collection",
	Long: `Print every record in the games collection without changing anything.

Examples:
  catalogseed show
  catalogseed show -o table
  catalogseed show --database shopdb`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container := shared.Container
		if container == nil {
			return fmt.Errorf("not initialized")
		}

		docs, err := container.ContentsQueryHandler.Handle(cmd.Context(), queries.ContentsQuery{
			Target: container.Target,
		})
		if err != nil {
			return err
		}

		ui.Debug("%s holds %d records", container.Target, len(docs))
		return writeDocuments(cmd.OutOrStdout(), docs, container.Config.Output.Format)
	},
}
