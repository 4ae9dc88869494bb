package main

import (
	"github.com/RodolfoBonis/spooliq-iamops/config/iamopscfg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// loadConfig resolves the effective configuration: defaults, then config
// file, then environment. An explicitly given --config must exist; the
// default path is optional.
func loadConfig(cmd *cobra.Command) (*iamopscfg.Config, error) {
	path := iamopscfg.DefaultConfigPath
	required := false
	if f := findFlag(cmd, "config"); f != nil && f.Changed {
		path = f.Value.String()
		required = true
	}
	cfg, err := iamopscfg.Load(path, required)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}
