// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/vimpilot/vimpilot/lib/config"
)

// ConfigFlags holds the shared --config flag for commands that load
// the vimpilot configuration. It implements [FlagBinder], so parameter
// structs embed it:
//
//	type startParams struct {
//	    cli.ConfigFlags
//	    Name string `json:"name" flag:"name" desc:"session name"`
//	}
//
//	// In Run:
//	cfg, err := params.LoadConfig()
//
// The MCP server excludes FlagBinder fields from tool input schemas,
// so --config stays an operator concern and never leaks into what
// agents see.
type ConfigFlags struct {
	ConfigFile string
}

// AddFlags registers --config on the given flag set.
func (c *ConfigFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigFile, "config", "", "config file (default: $VIMPILOT_CONFIG, then ~/.vimpilot/config.yaml)")
}

// LoadConfig loads, validates, and materializes the configuration.
// With --config set it loads that file; otherwise it follows the
// default lookup order (VIMPILOT_CONFIG, ~/.vimpilot/config.yaml,
// built-in defaults). Configured directories are created so commands
// can assume they exist.
func (c *ConfigFlags) LoadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if c.ConfigFile != "" {
		cfg, err = config.LoadFile(c.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}
