package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/assetdash/assetdash/pkg/api"
	"github.com/assetdash/assetdash/pkg/types"
)

func newStatsCmd(o *rootOptions) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics, optionally for a filtered subset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			response, err := o.client.ListResources(ctx, "/statistics", filters.query())
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return printRawResult(cmd.OutOrStdout(), response)
			}
			var rsp api.StatisticsRsp
			if err := json.Unmarshal(response, &rsp); err != nil {
				return fmt.Errorf("failed to parse response: %v", err)
			}
			w := cmd.OutOrStdout()
			row := func(label string, filtered, total int) {
				fmt.Fprintf(w, "%-20s %d of %d\n", label+":", filtered, total)
			}
			row("Assets", rsp.Filtered.TotalAssets, rsp.Total.TotalAssets)
			row("Countries", rsp.Filtered.TotalCountries, rsp.Total.TotalCountries)
			row("Asset Types", rsp.Filtered.TotalAssetTypes, rsp.Total.TotalAssetTypes)
			row("Operational", rsp.Filtered.OperationalAssets, rsp.Total.OperationalAssets)
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

func newColorsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Show the marker color of each asset type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			response, err := o.client.ListResources(ctx, "/colors", nil)
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return printRawResult(cmd.OutOrStdout(), response)
			}
			var colors types.MarkerColors
			if err := json.Unmarshal(response, &colors); err != nil {
				return fmt.Errorf("failed to parse response: %v", err)
			}
			for _, e := range colors.Entries() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", e.Color, e.Category)
			}
			return nil
		},
	}
}

func newFacetsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Show the values each filter can take",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			response, err := o.client.ListResources(ctx, "/facets", nil)
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return printRawResult(cmd.OutOrStdout(), response)
			}
			var facets types.FacetOptions
			if err := json.Unmarshal(response, &facets); err != nil {
				return fmt.Errorf("failed to parse response: %v", err)
			}
			title := cases.Title(language.English)
			w := cmd.OutOrStdout()
			for _, f := range []struct {
				name   string
				values []string
			}{
				{"countries", facets.Countries},
				{"asset types", facets.AssetTypes},
				{"planet coverage", facets.PlanetCoverages},
				{"sentinel-1 coverage", facets.Sentinel1Coverages},
				{"sentinel-2 coverage", facets.Sentinel2Coverages},
			} {
				fmt.Fprintf(w, "%s:\n", title.String(f.name))
				for _, v := range f.values {
					fmt.Fprintf(w, "- %s\n", v)
				}
			}
			return nil
		},
	}
}

func newStatusCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get server version and readiness",
		Long: `Get server version and readiness. The readiness check reports the
fingerprint of the catalog the server has loaded.

Examples:
  assetdash status
  assetdash status -j`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			versionBody, err := o.client.ListResources(ctx, "/version", nil)
			if err != nil {
				return err
			}
			var version api.GetVersionRsp
			if err := json.Unmarshal(versionBody, &version); err != nil {
				return fmt.Errorf("failed to parse response: %v", err)
			}
			readyBody, err := o.client.ListResources(ctx, "/ready", nil)
			if err != nil {
				return err
			}
			var ready api.ReadyRsp
			if err := json.Unmarshal(readyBody, &ready); err != nil {
				return fmt.Errorf("failed to parse response: %v", err)
			}
			if o.jsonOutput {
				return printResult(cmd.OutOrStdout(), map[string]any{
					"version": version,
					"ready":   ready,
				})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Server Version: %s\n", version.ServerVersion)
			fmt.Fprintf(w, "API Version: %s\n", version.ApiVersion)
			fmt.Fprintf(w, "Ready: %s\n", strings.ToLower(fmt.Sprint(ready.Ready)))
			if ready.Fingerprint != "" {
				fmt.Fprintf(w, "Catalog Fingerprint: %s\n", ready.Fingerprint)
			}
			return nil
		},
	}
}
