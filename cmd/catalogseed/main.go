package main

import (
	"os"

	"github.com/vivekkundariya/catalogseed/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
