package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for catalogseed configuration under $HOME
	GlobalConfigDir = ".catalogseed"

	// GlobalConfigFile is the configuration file name
	GlobalConfigFile = "config.yaml"

	// EnvConfigFile is the environment variable for a custom config file path
	EnvConfigFile = "CATALOGSEED_CONFIG"

	// EnvHome is the environment variable for the catalogseed home directory
	EnvHome = "CATALOGSEED_HOME"
)

// Defaults
const (
	DefaultMongoURI    = "mongodb://localhost:27017"
	DefaultDatabase    = "marketdb"
	DefaultCollection  = "games"
	DefaultS3Region    = "us-east-1"
	DefaultServiceName = "catalogseed"

	OutputJSON  = "json"
	OutputTable = "table"
)

// ErrInvalidConfig is returned when resolved settings cannot be used
var ErrInvalidConfig = errors.New("invalid configuration")

// GlobalConfig represents the catalogseed configuration
// stored at ~/.catalogseed/config.yaml
type GlobalConfig struct {
	Mongo     MongoConfig     `yaml:"mongo"`
	Seed      SeedConfig      `yaml:"seed,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Telemetry TelemetryConfig `yaml:"telemetry,omitempty"`
}

// MongoConfig holds the connection and target collection
type MongoConfig struct {
	// URI is the connection string; a database in its path is used
	// when Database is not set
	URI        string `yaml:"uri,omitempty"`
	Database   string `yaml:"database,omitempty"`
	Collection string `yaml:"collection,omitempty"`

	// Timeout bounds server selection, e.g. "10s". Empty uses the driver default.
	Timeout string `yaml:"timeout,omitempty"`
}

// SeedConfig selects where the seed batch comes from
type SeedConfig struct {
	// Source is empty for the built-in seed, a local path, or s3://bucket/key
	Source string   `yaml:"source,omitempty"`
	S3     S3Config `yaml:"s3,omitempty"`
}

// S3Config holds object storage settings for s3:// seed sources
type S3Config struct {
	// Endpoint overrides the AWS endpoint, e.g. "http://localhost:4566" for LocalStack
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
}

// OutputConfig controls how the collection dump is printed
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
}

// TelemetryConfig controls trace export
type TelemetryConfig struct {
	// OTLPEndpoint is the OTLP/HTTP collector host:port; empty disables export
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
	ServiceName  string `yaml:"service_name,omitempty"`
}

// GetHome returns the catalogseed home directory
// Priority: CATALOGSEED_HOME env var > ~/.catalogseed
func GetHome() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(userHome, GlobalConfigDir), nil
}

// GetGlobalConfigPath returns the path to the default config file
func GetGlobalConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalConfigFile), nil
}

// LoadConfigFile reads a config file. A missing file yields an empty
// config unless required is set.
func LoadConfigFile(path string, required bool) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfigFile writes the config to path, creating its directory
func SaveConfigFile(path string, cfg *GlobalConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultGlobalConfig returns the default configuration
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mongo: MongoConfig{
			URI:        DefaultMongoURI,
			Database:   DefaultDatabase,
			Collection: DefaultCollection,
		},
		Seed: SeedConfig{
			S3: S3Config{Region: DefaultS3Region},
		},
		Output: OutputConfig{Format: OutputJSON},
		Telemetry: TelemetryConfig{
			ServiceName: DefaultServiceName,
		},
	}
}

// applyDefaults fills unset values. The database falls back to the one
// named in the URI before the default.
func (c *GlobalConfig) applyDefaults() {
	defaults := DefaultGlobalConfig()

	if c.Mongo.URI == "" {
		c.Mongo.URI = defaults.Mongo.URI
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = databaseFromURI(c.Mongo.URI)
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = defaults.Mongo.Database
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = defaults.Mongo.Collection
	}
	if c.Seed.S3.Region == "" {
		c.Seed.S3.Region = defaults.Seed.S3.Region
	}
	if c.Output.Format == "" {
		c.Output.Format = defaults.Output.Format
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = defaults.Telemetry.ServiceName
	}
}

// SetupConfig returns the settings written by a fresh setup. The database
// is left unset so one named in the URI path is still honored.
func SetupConfig() *GlobalConfig {
	cfg := DefaultGlobalConfig()
	cfg.Mongo.Database = ""
	return cfg
}

// WriteConfigFile saves cfg to path, refusing to replace an existing file unless force is set
func WriteConfigFile(path string, cfg *GlobalConfig, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
	}
	return SaveConfigFile(path, cfg)
}
