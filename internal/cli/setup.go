package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vivekkundariya/catalogseed/internal/cli/prompts"
	"github.com/vivekkundariya/catalogseed/internal/config"
	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/infrastructure/seedsource"
	"github.com/vivekkundariya/catalogseed/internal/ui"
)

// newSetupCmd creates the setup subcommand for the config file
func newSetupCmd() *cobra.Command {
	var (
		useDefaults bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write a catalogseed config file",
		Long: `Write the catalogseed config file: the --config path, else
$CATALOGSEED_CONFIG, else ~/.catalogseed/config.yaml.

Prompts for the connection, target collection and seed source. With
--defaults the prompts are skipped and the default settings are written.

Examples:
  catalogseed setup
  catalogseed setup --defaults
  catalogseed setup --config ./catalogseed.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.SetupConfig()
			if !useDefaults {
				if err := promptSettings(cfg); err != nil {
					return err
				}
			}
			if err := cfg.ValidateWithDefaults(); err != nil {
				return err
			}

			path, err := saveSetup(cfg, force)
			if err != nil {
				return err
			}

			ui.Successf("Config written to %s", path)
			ui.Infof("Run 'catalogseed config show' to review the resolved settings")
			return nil
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write the defaults without prompting")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

// saveSetup writes to the same file later commands read: --config,
// then $CATALOGSEED_CONFIG, then the default location
func saveSetup(cfg *config.GlobalConfig, force bool) (string, error) {
	path, _, err := config.NewConfigResolver(configFile, config.Overrides{}).ConfigPath()
	if err != nil {
		return "", err
	}
	return path, config.WriteConfigFile(path, cfg, force)
}

func promptSettings(cfg *config.GlobalConfig) error {
	var err error

	cfg.Mongo.URI, err = prompts.Text("MongoDB connection string", "", cfg.Mongo.URI, validateURI)
	if err != nil {
		return err
	}

	databaseHint := "Leave empty to use the database in the connection string, else " + config.DefaultDatabase
	cfg.Mongo.Database, err = prompts.Text("Database", databaseHint, cfg.Mongo.Database, func(s string) error {
		return catalog.Target{Database: s, Collection: config.DefaultCollection}.Validate()
	})
	if err != nil {
		return err
	}

	cfg.Mongo.Collection, err = prompts.Text("Collection", "", cfg.Mongo.Collection, func(s string) error {
		return catalog.Target{Database: config.DefaultDatabase, Collection: s}.Validate()
	})
	if err != nil {
		return err
	}

	seed, err := prompts.Text("Seed source",
		"builtin, a .yaml/.json file or s3://bucket/key", seedsource.BuiltinName, validateSeed)
	if err != nil {
		return err
	}
	if seed != seedsource.BuiltinName {
		cfg.Seed.Source = seed
	}

	if strings.HasPrefix(seed, "s3://") {
		useLocalStack, err := prompts.Confirm("Read the seed from LocalStack?", true)
		if err != nil {
			return err
		}
		if useLocalStack {
			cfg.Seed.S3.Endpoint, err = prompts.Text("S3 endpoint", "", "http://localhost:4566", nil)
			if err != nil {
				return err
			}
		}
	}

	cfg.Output.Format, err = prompts.Select("Output format",
		[]string{config.OutputJSON, config.OutputTable}, cfg.Output.Format)
	return err
}

func validateURI(s string) error {
	if !strings.HasPrefix(s, "mongodb://") && !strings.HasPrefix(s, "mongodb+srv://") {
		return fmt.Errorf("must start with mongodb:// or mongodb+srv://")
	}
	return nil
}

func validateSeed(s string) error {
	if s == seedsource.BuiltinName {
		return nil
	}
	_, err := seedsource.FormatOf(s)
	return err
}
