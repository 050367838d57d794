package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetdash/assetdash/internal/catalogsrv/catalogstore"
)

func newCatalogCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with catalog files locally",
		Long: `Work with catalog files locally. The file encoding is derived from the
file name: .json, .jsonc, .yaml or .yml, optionally followed by .sz (snappy)
or .zst (zstd). The name "bundled" selects the catalog built into assetdash.`,
	}
	cmd.AddCommand(newCatalogValidateCmd(o))
	cmd.AddCommand(newCatalogPackCmd(o))
	return cmd
}

// readCatalogFile parses file, or the catalog embedded in the binary when
// file is "bundled".
func readCatalogFile(file string) (*catalogstore.Catalog, error) {
	if file == catalogstore.BundledSource {
		return catalogstore.Parse(catalogstore.BundledBytes(), "catalog.json")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read catalog: %w", err)
	}
	return catalogstore.Parse(data, file)
}

func newCatalogValidateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a catalog file and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCatalogFile(args[0])
			if err != nil {
				return err
			}
			stats := c.Statistics()
			if o.jsonOutput {
				return printResult(cmd.OutOrStdout(), map[string]any{
					"fingerprint": c.Fingerprint(),
					"statistics":  stats,
					"mismatches":  c.MetadataMismatches(),
				})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s is valid\n", args[0])
			fmt.Fprintf(w, "Assets: %d, Countries: %d, Asset Types: %d, Operational: %d\n",
				stats.TotalAssets, stats.TotalCountries, stats.TotalAssetTypes, stats.OperationalAssets)
			fmt.Fprintf(w, "Fingerprint: %s\n", c.Fingerprint())
			for _, m := range c.MetadataMismatches() {
				fmt.Fprintf(w, "Warning: %s\n", m)
			}
			return nil
		},
	}
}

func newCatalogPackCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <input> <output>",
		Short: "Validate a catalog and write it in the encoding of the output name",
		Long: `Validate a catalog and write it in the encoding of the output name.

Examples:
  assetdash catalog pack catalog.yaml catalog.json.zst
  assetdash catalog pack bundled catalog.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCatalogFile(args[0])
			if err != nil {
				return err
			}
			data, err := c.Encode(args[1])
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return fmt.Errorf("unable to write catalog: %w", err)
			}
			if o.jsonOutput {
				return printResult(cmd.OutOrStdout(), map[string]any{
					"output":      args[1],
					"bytes":       len(data),
					"fingerprint": c.Fingerprint(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d assets to %s (%d bytes)\n", c.Len(), args[1], len(data))
			return nil
		},
	}
}
