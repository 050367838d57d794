package catalogview

import (
	"strings"

	"github.com/samber/lo"

	"github.com/assetdash/assetdash/pkg/types"
)

const operationalStatus = "operational"

// ComputeStatistics counts assets, distinct countries, distinct categories
// and operational assets. It is called once for the whole catalog and once
// for the filtered subset.
func ComputeStatistics(assets []types.Asset) types.Statistics {
	countries := lo.Uniq(lo.Map(assets, func(a types.Asset, _ int) string {
		return a.Location.Country
	}))
	return types.Statistics{
		TotalAssets:     len(assets),
		TotalCountries:  len(countries),
		TotalAssetTypes: len(Categories(assets)),
		OperationalAssets: lo.CountBy(assets, func(a types.Asset) bool {
			return IsOperational(a.OperationalData.CurrentStatus)
		}),
	}
}

// IsOperational reports whether status is "operational", ignoring case.
func IsOperational(status string) bool {
	return strings.EqualFold(status, operationalStatus)
}
