// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/aiostack/aiostack/internal/config"
)

// Factory function variables shared by handlers - can be replaced in tests.
var (
	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// loadConfig resolves the config path, falling back to aiostack.yaml in the
// working directory, and loads it.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		if !fileExists(config.DefaultConfigFile) {
			return nil, fmt.Errorf("no config file found: create %s with 'aiostack init' or pass --config", config.DefaultConfigFile)
		}
		configPath = config.DefaultConfigFile
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	return cfg, nil
}
