package shared

import (
	"github.com/vivekkundariya/catalogseed/internal/application/wiring"
	"github.com/vivekkundariya/catalogseed/internal/config"
)

var (
	// Container is the DI container initialized by root command
	Container *wiring.Container

	// Config holds the settings resolved by the root command
	Config *config.GlobalConfig

	// ConfigPath is the config file that was consulted, whether or not it existed
	ConfigPath string
)
