package catalogview

import (
	"sort"

	"github.com/samber/lo"

	"github.com/assetdash/assetdash/pkg/types"
)

// Facets returns the sorted distinct values offered by each exact-match
// filter control.
func Facets(assets []types.Asset) types.FacetOptions {
	return types.FacetOptions{
		Countries: distinctSorted(assets, func(a types.Asset) string {
			return a.Location.Country
		}),
		AssetTypes: distinctSorted(assets, func(a types.Asset) string {
			return a.BasicInfo.Type
		}),
		PlanetCoverages: distinctSorted(assets, func(a types.Asset) string {
			return a.PlanetDataCoverage
		}),
		Sentinel1Coverages: distinctSorted(assets, func(a types.Asset) string {
			return a.Sentinel1Coverage
		}),
		Sentinel2Coverages: distinctSorted(assets, func(a types.Asset) string {
			return a.Sentinel2Coverage
		}),
	}
}

func distinctSorted(assets []types.Asset, key func(types.Asset) string) []string {
	values := lo.Uniq(lo.Map(assets, func(a types.Asset, _ int) string {
		return key(a)
	}))
	sort.Strings(values)
	return values
}
