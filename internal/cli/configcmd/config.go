package configcmd

import "github.com/spf13/cobra"

// Cmd is the parent command for configuration management
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect catalogseed configuration",
	Long: `Commands for inspecting catalogseed configuration.

Examples:
  catalogseed config show    Show resolved settings and where they came from`,
}
