package cli

import (
	"fmt"
	"os"

	"github.com/abelbrown/factguard/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

// configCmd groups configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage FactGuard configuration",
	Long: `Manage FactGuard configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (FACTGUARD_*, also read from .env)
3. Config file (~/.factguard/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if used := v.ConfigFileUsed(); used != "" {
			if _, err := os.Stat(used); err == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", used)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults)\n\n")
			}
		}

		data, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	// A broken existing file must not stop init from replacing it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.ConfigPath()
		}
		if err := writeDefaultConfig(path, configForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
