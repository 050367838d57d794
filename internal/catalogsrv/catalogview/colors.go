package catalogview

import (
	"github.com/samber/lo"

	"github.com/assetdash/assetdash/pkg/types"
)

// DefaultPalette is cycled through when there are more categories than
// colors.
var DefaultPalette = []string{
	"#ff3838",
	"#00d9ff",
	"#16a34a",
	"#ffd000",
	"#8b5cf6",
	"#f97316",
	"#ec4899",
	"#14b8a6",
	"#6366f1",
	"#84cc16",
}

// AssignColors gives every category in assets a color from DefaultPalette.
func AssignColors(assets []types.Asset) types.MarkerColors {
	return AssignColorsFrom(assets, DefaultPalette)
}

// AssignColorsFrom assigns palette colors to categories in first-seen order.
// The same catalog always yields the same mapping.
func AssignColorsFrom(assets []types.Asset, palette []string) types.MarkerColors {
	colors := types.NewMarkerColors()
	if len(palette) == 0 {
		return colors
	}
	for i, category := range Categories(assets) {
		colors.Set(category, palette[i%len(palette)])
	}
	return colors
}

// Categories returns the distinct asset types in first-seen order.
func Categories(assets []types.Asset) []string {
	return lo.Uniq(lo.Map(assets, func(a types.Asset, _ int) string {
		return a.BasicInfo.Type
	}))
}
