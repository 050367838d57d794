package catalogview

import (
	"slices"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/assetdash/assetdash/pkg/types"
)

// FindAsset looks up an asset by id.
func FindAsset(assets []types.Asset, assetID string) (types.Asset, bool) {
	if assetID == "" {
		return types.Asset{}, false
	}
	return lo.Find(assets, func(a types.Asset) bool {
		return a.AssetID == assetID
	})
}

// SortByName returns a copy of assets ordered by display name using English
// collation. Assets with equal names keep their catalog order.
func SortByName(assets []types.Asset) []types.Asset {
	out := slices.Clone(assets)
	if out == nil {
		out = []types.Asset{}
	}
	col := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b types.Asset) int {
		return col.CompareString(a.BasicInfo.Name, b.BasicInfo.Name)
	})
	return out
}
