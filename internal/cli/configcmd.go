package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the CLI configuration",
	}
	cmd.AddCommand(newConfigCreateCmd(o))
	cmd.AddCommand(newConfigShowCmd(o))
	return cmd
}

func (o *rootOptions) configPath() (string, error) {
	if o.configFile != "" {
		return o.configFile, nil
	}
	return GetDefaultConfigPath()
}

func newConfigCreateCmd(o *rootOptions) *cobra.Command {
	var (
		timeout string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the configuration file",
		Long: `Create the configuration file.

Examples:
  assetdash config create --server localhost:8194`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := o.configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists; use --force to overwrite", path)
			}
			c := &Config{
				Version:   configVersion,
				ServerURL: MorphServer(o.serverURL),
				Timeout:   timeout,
			}
			if err := c.ValidateConfig(); err != nil {
				return err
			}
			if err := c.WriteConfig(path); err != nil {
				return err
			}
			if o.jsonOutput {
				return printResult(cmd.OutOrStdout(), map[string]string{"path": path})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&timeout, "timeout", "", "Request timeout, e.g. 30s")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := o.configPath()
			if err != nil {
				return err
			}
			if err := LoadConfig(path); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return errors.New("assetdash config file not found. Configure assetdash with \"assetdash config create\" first")
				}
				return err
			}
			if o.jsonOutput {
				return printResult(cmd.OutOrStdout(), GetConfig())
			}
			GetConfig().Print(cmd.OutOrStdout())
			return nil
		},
	}
}
