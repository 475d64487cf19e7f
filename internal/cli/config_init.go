package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/taskbatch/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates ~/.taskbatch/config.yaml (or $TASKBATCH_HOME/config.yaml) with
the default settings.`,
		Example: `  # Create configuration
  taskbatch config init

  # Create configuration, overwriting existing
  taskbatch config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.EnsureConfigDir(); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}

			if err = config.Default().Save(path, force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w, use --force to overwrite", err)
				}
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file and environment overrides.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if output == config.OutputTable {
				output = config.OutputYAML
			}
			return writeStructured(cmd.OutOrStdout(), output, cfg)
		},
	}

	cmd.Flags().StringVar(&output, "output", config.OutputYAML, "output format: json or yaml")

	return cmd
}
