package apis

import (
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogstore"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/internal/catalogsrv/geoview"
	"github.com/assetdash/assetdash/pkg/api"
	"github.com/assetdash/assetdash/pkg/types"
)

// BuildView assembles the dashboard view for one filter state. The selected
// asset is looked up in the whole catalog, so a selection survives filter
// changes that hide it.
func BuildView(c *catalogstore.Catalog, cache *catalogview.Cache, criteria types.FilterCriteria, selectedID string) (*api.ViewRsp, error) {
	filtered := c.Filter(criteria, cache)
	rsp := &api.ViewRsp{
		Criteria: criteria.Normalized(),
		Assets:   filtered,
		Statistics: api.StatisticsRsp{
			Total:    c.Statistics(),
			Filtered: catalogview.ComputeStatistics(filtered),
		},
		Colors:   c.Colors(),
		Viewport: geoview.DefaultViewport,
	}
	if bounds, ok := geoview.Bounds(filtered); ok {
		rsp.Bounds = &bounds
	}
	if selectedID != "" {
		a, ok := c.Asset(selectedID)
		if !ok {
			return nil, ErrAssetNotFound.Suffix(selectedID)
		}
		rsp.Selected = &a
		rsp.Viewport = geoview.Focus(a)
	}
	return rsp, nil
}
