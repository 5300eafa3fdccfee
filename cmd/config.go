package cmd

import (
	"fmt"

	"github.com/gnames/esdveg/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const passwordMask = "********"

// getConfigCmd returns the config command.
func getConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print effective configuration",
		Long: `Print configuration that results from config.yaml, environment
variables and defaults. The database password is masked.

Examples:
  esdveg config
  ESDVEG_LOG_LEVEL=debug esdveg config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := configYAML(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s",
				config.ConfigFilePath(cfg.HomeDir), out)
			return nil
		},
	}
}

// configYAML renders persistent fields of a config with masked password.
func configYAML(c *config.Config) (string, error) {
	res := *c
	if res.Database.Password != "" {
		res.Database.Password = passwordMask
	}
	data, err := yaml.Marshal(&res)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
