package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/assetdash/assetdash/internal/common/httpclient"
)

// Version of the CLI.
const Version = "v0.3.0"

type rootOptions struct {
	jsonOutput bool
	configFile string
	serverURL  string
	client     httpclient.HTTPClientInterface
}

// NewRootCmd creates a new root command for the CLI
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assetdash",
		Short: "AssetDash CLI is a command line interface for the asset catalog",
		Long: `AssetDash CLI is a command line interface for browsing the asset catalog served
by an AssetDash catalog server, and for validating and packing catalog files.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: o.preRunHandlePersistents,
	}
	cmd.PersistentFlags().StringVarP(&o.configFile, "config", "", "", "Path to configuration file to override default")
	cmd.PersistentFlags().StringVarP(&o.serverURL, "server", "s", "", "Catalog server URL, overriding the configuration file")
	cmd.PersistentFlags().BoolVarP(&o.jsonOutput, "json", "j", false, "Output in JSON format")

	addCommands(cmd, o)
	return cmd
}

func addCommands(cmd *cobra.Command, o *rootOptions) {
	cmd.AddCommand(newVersionCmd(o))
	cmd.AddCommand(newStatusCmd(o))
	cmd.AddCommand(newConfigCmd(o))
	cmd.AddCommand(newAssetsCmd(o))
	cmd.AddCommand(newStatsCmd(o))
	cmd.AddCommand(newColorsCmd(o))
	cmd.AddCommand(newFacetsCmd(o))
	cmd.AddCommand(newCatalogCmd(o))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := httpclient.DefaultTimeout
	if c := GetConfig(); c != nil && c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
			timeout = d
		}
	}
	return context.WithTimeout(ctx, timeout)
}
