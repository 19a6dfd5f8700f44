package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
)

// Overrides holds values given on the command line. Empty fields are ignored.
type Overrides struct {
	URI        string
	Database   string
	Collection string
	Seed       string
	Output     string
}

// ConfigResolver resolves settings with priority:
// 1. Command-line flags
// 2. Environment variables
// 3. Config file (--config, $CATALOGSEED_CONFIG, ~/.catalogseed/config.yaml)
// 4. Defaults
type ConfigResolver struct {
	// CLIConfigPath is the --config flag value
	CLIConfigPath string
	Overrides     Overrides

	// Lookup reads environment variables; nil uses os.LookupEnv
	Lookup LookupFunc
}

// NewConfigResolver creates a resolver
func NewConfigResolver(cliConfigPath string, overrides Overrides) *ConfigResolver {
	return &ConfigResolver{
		CLIConfigPath: cliConfigPath,
		Overrides:     overrides,
	}
}

// ConfigPath returns the config file path to read and whether it was
// explicitly requested
func (r *ConfigResolver) ConfigPath() (string, bool, error) {
	if r.CLIConfigPath != "" {
		return r.CLIConfigPath, true, nil
	}

	lookup := r.lookup()
	if path, ok := lookup(EnvConfigFile); ok && path != "" {
		return path, true, nil
	}

	path, err := GetGlobalConfigPath()
	return path, false, err
}

// Resolve merges all sources and validates the result
func (r *ConfigResolver) Resolve() (*GlobalConfig, error) {
	path, required, err := r.ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfigFile(path, required)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv(r.lookup())
	cfg.applyOverrides(r.Overrides)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *ConfigResolver) lookup() LookupFunc {
	if r.Lookup != nil {
		return r.Lookup
	}
	return os.LookupEnv
}

func (c *GlobalConfig) applyOverrides(o Overrides) {
	if o.URI != "" {
		c.Mongo.URI = o.URI
	}
	if o.Database != "" {
		c.Mongo.Database = o.Database
	}
	if o.Collection != "" {
		c.Mongo.Collection = o.Collection
	}
	if o.Seed != "" {
		c.Seed.Source = o.Seed
	}
	if o.Output != "" {
		c.Output.Format = o.Output
	}
}

// Validate checks that resolved settings are usable
func (c *GlobalConfig) Validate() error {
	var problems []string

	if !strings.HasPrefix(c.Mongo.URI, "mongodb://") && !strings.HasPrefix(c.Mongo.URI, "mongodb+srv://") {
		problems = append(problems, fmt.Sprintf("mongo uri must start with mongodb:// or mongodb+srv://, got %q", MaskURI(c.Mongo.URI)))
	}

	if err := c.Target().Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if _, err := c.Timeout(); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.Output.Format {
	case OutputJSON, OutputTable:
	default:
		problems = append(problems, fmt.Sprintf("output must be %q or %q, got %q", OutputJSON, OutputTable, c.Output.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateWithDefaults validates c as it would resolve with unset values defaulted
func (c *GlobalConfig) ValidateWithDefaults() error {
	resolved := *c
	resolved.applyDefaults()
	return resolved.Validate()
}

// Target returns the database and collection to bootstrap
func (c *GlobalConfig) Target() catalog.Target {
	return catalog.Target{
		Database:   c.Mongo.Database,
		Collection: c.Mongo.Collection,
	}
}

// Timeout parses the configured server selection timeout. Zero means unset.
func (c *GlobalConfig) Timeout() (time.Duration, error) {
	if c.Mongo.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Mongo.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("mongo timeout must be a non-negative duration, got %q", c.Mongo.Timeout)
	}
	return d, nil
}

// Settings returns the resolved values as ordered key/value pairs for display
func (c *GlobalConfig) Settings() [][2]string {
	seed := c.Seed.Source
	if seed == "" {
		seed = "builtin"
	}
	timeout := c.Mongo.Timeout
	if timeout == "" {
		timeout = "driver default"
	}
	otlp := c.Telemetry.OTLPEndpoint
	if otlp == "" {
		otlp = "disabled"
	}

	settings := [][2]string{
		{"mongo.uri", MaskURI(c.Mongo.URI)},
		{"mongo.database", c.Mongo.Database},
		{"mongo.collection", c.Mongo.Collection},
		{"mongo.timeout", timeout},
		{"seed.source", seed},
	}
	if strings.HasPrefix(c.Seed.Source, "s3://") || c.Seed.S3.Endpoint != "" {
		settings = append(settings,
			[2]string{"seed.s3.endpoint", c.Seed.S3.Endpoint},
			[2]string{"seed.s3.region", c.Seed.S3.Region},
		)
	}
	return append(settings,
		[2]string{"output.format", c.Output.Format},
		[2]string{"telemetry.otlp_endpoint", otlp},
	)
}

// MaskURI hides the password in a connection string
func MaskURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		if strings.Contains(uri, "@") {
			return "<unparseable uri with credentials>"
		}
		return uri
	}
	return u.Redacted()
}
