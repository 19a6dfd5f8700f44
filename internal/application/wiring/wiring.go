package wiring

import (
	"fmt"

	"github.com/vivekkundariya/catalogseed/internal/application/commands"
	"github.com/vivekkundariya/catalogseed/internal/application/ports"
	"github.com/vivekkundariya/catalogseed/internal/application/queries"
	"github.com/vivekkundariya/catalogseed/internal/config"
	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/infrastructure/aws"
	"github.com/vivekkundariya/catalogseed/internal/infrastructure/mongodb"
	"github.com/vivekkundariya/catalogseed/internal/infrastructure/seedsource"
)

// Container holds all dependencies (Dependency Injection Container)
// This follows the Dependency Inversion Principle
type Container struct {
	Config *config.GlobalConfig
	Target catalog.Target

	// Infrastructure
	Connector  ports.StoreConnector
	SeedSource ports.SeedSource

	// Command Handlers
	BootstrapCommandHandler *commands.BootstrapCommandHandler

	// Query Handlers
	ContentsQueryHandler *queries.ContentsQueryHandler
}

// NewContainer builds the container from resolved settings. Nothing
// connects until a handler runs.
func NewContainer(cfg *config.GlobalConfig) (*Container, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return NewContainerWithConnector(cfg, mongodb.NewConnector(cfg.Mongo.URI, timeout))
}

// NewContainerWithConnector builds the container around an existing store connector
func NewContainerWithConnector(cfg *config.GlobalConfig, connector ports.StoreConnector) (*Container, error) {
	seeds, err := seedsource.New(cfg.Seed.Source, aws.S3Options{
		Endpoint: cfg.Seed.S3.Endpoint,
		Region:   cfg.Seed.S3.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("seed source: %w", err)
	}

	return &Container{
		Config:                  cfg,
		Target:                  cfg.Target(),
		Connector:               connector,
		SeedSource:              seeds,
		BootstrapCommandHandler: commands.NewBootstrapCommandHandler(connector, seeds),
		ContentsQueryHandler:    queries.NewContentsQueryHandler(connector),
	}, nil
}
