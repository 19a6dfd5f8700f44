package configcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vivekkundariya/catalogseed/internal/cli/shared"
	"github.com/vivekkundariya/catalogseed/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration",
	Long: `Show the settings catalogseed would use after applying flags,
environment variables, the config file and defaults. Passwords in the
connection string are masked.

Examples:
  catalogseed config show
  catalogseed config show --uri mongodb://db:27017/shop`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := shared.Config
		if cfg == nil {
			return fmt.Errorf("config not initialized")
		}

		source := shared.ConfigPath
		if _, err := os.Stat(source); err != nil {
			source += " (not found, using defaults)"
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Config file: %s\n", source)
		fmt.Fprintf(w, "  Target:      %s\n", cfg.Target())
		fmt.Fprintln(w)

		ui.RenderSettings(w, cfg.Settings())
		return nil
	},
}

func init() {
	Cmd.AddCommand(showCmd)
}
