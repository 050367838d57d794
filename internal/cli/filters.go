package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/assetdash/assetdash/internal/catalogsrv/apis"
	"github.com/assetdash/assetdash/pkg/types"
)

type filterFlags struct {
	criteria types.FilterCriteria
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.criteria.Search, "search", "q", "", "Free-text search over name, country, region, type and nearby cities")
	cmd.Flags().StringVarP(&f.criteria.Country, "country", "c", "", "Exact country")
	cmd.Flags().StringVarP(&f.criteria.AssetType, "type", "t", "", "Exact asset type")
	cmd.Flags().StringVar(&f.criteria.PlanetCoverage, "planet", "", "Exact Planet coverage level")
	cmd.Flags().StringVar(&f.criteria.Sentinel1Coverage, "sentinel1", "", "Exact Sentinel-1 coverage level")
	cmd.Flags().StringVar(&f.criteria.Sentinel2Coverage, "sentinel2", "", "Exact Sentinel-2 coverage level")
}

func (f *filterFlags) query() url.Values {
	return apis.ToQuery(f.criteria.Normalized())
}
