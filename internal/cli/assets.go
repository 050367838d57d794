package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"

	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/pkg/types"
)

// badgeColors maps the status badge colors to terminal colors.
var badgeColors = map[string]*color.Color{
	catalogview.StatusColor("operational"):        color.New(color.FgGreen),
	catalogview.StatusColor("under development"):  color.New(color.FgCyan),
	catalogview.StatusColor("under construction"): color.New(color.FgYellow),
	catalogview.StatusColor("pre-construction"):   color.New(color.FgMagenta),
	catalogview.StatusColor("decommissioned"):     color.New(color.FgHiBlack),
}

func colorStatus(status string) string {
	if !catalogview.KnownStatus(status) {
		return status
	}
	if c, ok := badgeColors[catalogview.StatusColor(status)]; ok {
		return c.Sprint(status)
	}
	return status
}

func newAssetsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Browse the assets of the catalog",
	}
	cmd.AddCommand(newAssetsListCmd(o))
	cmd.AddCommand(newAssetsGetCmd(o))
	return cmd
}

func newAssetsListCmd(o *rootOptions) *cobra.Command {
	var (
		filters filterFlags
		sortBy  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the assets matching the given filters",
		Long: `List the assets matching the given filters. Filters combine with AND;
--search matches case-insensitively, all other filters match exactly.

Examples:
  assetdash assets list
  assetdash assets list --country Norway --type "Oil Field"
  assetdash assets list -q wind --sort name`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			q := filters.query()
			if sortBy != "" {
				q.Set("sort", sortBy)
			}
			response, err := o.client.ListResources(ctx, "/assets", q)
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return printRawResult(cmd.OutOrStdout(), response)
			}
			var assets []types.Asset
			if err := json.Unmarshal([]byte(gjson.GetBytes(response, "assets").Raw), &assets); err != nil {
				return fmt.Errorf("failed to parse response: %v", err)
			}
			printAssetTable(cmd.OutOrStdout(), assets)
			fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d assets\n",
				gjson.GetBytes(response, "count").Int(), gjson.GetBytes(response, "total").Int())
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVar(&sortBy, "sort", "", `Sort order; "name" sorts by asset name`)
	return cmd
}

func printAssetTable(w io.Writer, assets []types.Asset) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCOUNTRY\tSTATUS")
	for _, a := range assets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.AssetID, a.BasicInfo.Name, a.BasicInfo.Type, a.Location.Country,
			colorStatus(a.OperationalData.CurrentStatus))
	}
	tw.Flush()
}

func newAssetsGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <assetId>",
		Short: "Show the full record of one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			response, err := o.client.GetResource(ctx, "/assets/{assetId}", map[string]string{"assetId": args[0]}, nil)
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return printRawResult(cmd.OutOrStdout(), response)
			}
			yamlBytes, err := yaml.JSONToYAML(response)
			if err != nil {
				return fmt.Errorf("failed to format response: %v", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(yamlBytes))
			return nil
		},
	}
}
