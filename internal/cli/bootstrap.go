package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vivekkundariya/catalogseed/internal/application/commands"
	"github.com/vivekkundariya/catalogseed/internal/cli/shared"
	"github.com/vivekkundariya/catalogseed/internal/infrastructure/telemetry"
	"github.com/vivekkundariya/catalogseed/internal/ui"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create, index and seed the games collection",
	Long: `Bootstrap the games collection:

  1. Load and validate the seed batch
  2. Connect to MongoDB
  3. Create the collection if it does not exist
  4. Declare the sku (unique), platform+genre and title text indexes
  5. Insert the seed batch only if the collection is empty
  6. Print every record in the collection to stdout

Progress goes to stderr so the dump can be piped.

Examples:
  catalogseed bootstrap
  catalogseed bootstrap --seed s3://seeds/games.yaml -o table
  catalogseed bootstrap | jq '.[].sku'`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

func runBootstrap(cmd *cobra.Command, args []string) (err error) {
	container := shared.Container
	if container == nil {
		return fmt.Errorf("not initialized")
	}
	cfg := container.Config
	ctx := cmd.Context()

	shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, Version)
	if err != nil {
		return err
	}
	defer func() {
		if serr := shutdown(context.WithoutCancel(ctx)); serr != nil {
			ui.Warnf("Failed to flush traces: %v", serr)
		}
	}()

	ui.Header("Bootstrapping %s", container.Target)

	result, err := container.BootstrapCommandHandler.Handle(ctx, commands.BootstrapCommand{
		Target: container.Target,
	})
	if err != nil {
		return err
	}

	ui.Successf("%s holds %d records (%d inserted)", result.Target, len(result.Documents), result.Inserted)
	return writeDocuments(cmd.OutOrStdout(), result.Documents, cfg.Output.Format)
}
