package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vivekkundariya/catalogseed/internal/application/wiring"
	"github.com/vivekkundariya/catalogseed/internal/cli/configcmd"
	"github.com/vivekkundariya/catalogseed/internal/cli/shared"
	"github.com/vivekkundariya/catalogseed/internal/config"
	"github.com/vivekkundariya/catalogseed/internal/ui"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

var (
	// CLI flags
	configFile string
	verbose    bool
	noColor    bool
	overrides  config.Overrides
)

var rootCmd = &cobra.Command{
	Use:   "catalogseed",
	Short: "catalogseed - Bootstrap the games catalog collection",
	Long: `catalogseed prepares the games collection of the marketplace database:
it creates the collection, declares its indexes, seeds it when empty and
prints what the collection holds.

Running catalogseed with no subcommand is the same as 'catalogseed bootstrap'.
Re-running is safe; an existing collection is never reseeded.

Configuration (highest priority first):
  1. Command-line flags
  2. Environment variables (CATALOGSEED_*, MONGO_URL, MONGO_DB, .env)
  3. Config file (--config, CATALOGSEED_CONFIG, ~/.catalogseed/config.yaml)
  4. Defaults (mongodb://localhost:27017, marketdb.games)

Examples:
  catalogseed                                  Bootstrap with defaults
  catalogseed --uri mongodb://db:27017/shop    Bootstrap shop.games
  catalogseed --seed ./games.yaml -o table     Seed from a file, print a table
  catalogseed show                             Print the collection
  catalogseed config show                      Show resolved settings`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initialize,
	RunE:              runBootstrap,
}

// initialize resolves configuration and builds the container for commands that need it
func initialize(cmd *cobra.Command, args []string) error {
	ui.SetVerbose(verbose)
	if noColor {
		ui.SetColor(false)
	}

	// Skip initialization for help, completion and setup
	switch cmd.Name() {
	case "help", "completion", "setup":
		return nil
	}

	if err := config.LoadDotEnv(""); err != nil {
		ui.Warnf("Ignoring .env: %v", err)
	}

	resolver := config.NewConfigResolver(configFile, overrides)
	path, _, err := resolver.ConfigPath()
	if err != nil {
		return err
	}
	shared.ConfigPath = path

	cfg, err := resolver.Resolve()
	if err != nil {
		return err
	}
	shared.Config = cfg
	ui.Debug("Using config: %s", path)
	ui.Debug("Target: %s", cfg.Target())

	container, err := wiring.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	shared.Container = container
	return nil
}

// Execute runs the root command, cancelling on SIGINT or SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		ui.Errorf("%v", err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate("catalogseed {{.Version}}\n")

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "",
		"Path to config file (default: ~/.catalogseed/config.yaml)")
	flags.StringVar(&overrides.URI, "uri", "",
		"MongoDB connection string (default: mongodb://localhost:27017)")
	flags.StringVarP(&overrides.Database, "database", "d", "",
		"Database name (default: from the URI path, else marketdb)")
	flags.StringVar(&overrides.Collection, "collection", "",
		"Collection name (default: games)")
	flags.StringVarP(&overrides.Seed, "seed", "s", "",
		"Seed source: builtin, a .yaml/.json file or s3://bucket/key")
	flags.StringVarP(&overrides.Output, "output", "o", "",
		"Output format for the collection dump: json or table")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
	flags.BoolVar(&noColor, "no-color", false,
		"Disable colored output (also NO_COLOR)")

	// Add subcommands
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(configcmd.Cmd)
}
