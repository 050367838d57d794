package api

import (
	"time"

	"github.com/assetdash/assetdash/pkg/types"
)

// Query parameters accepted by the filtered endpoints.
const (
	QuerySearch            = "search"
	QueryCountry           = "country"
	QueryType              = "type"
	QueryPlanetCoverage    = "planet_coverage"
	QuerySentinel1Coverage = "sentinel_1_coverage"
	QuerySentinel2Coverage = "sentinel_2_coverage"
	QuerySelected          = "selected"
)

type MetadataRsp struct {
	Metadata    types.Metadata `json:"metadata"`
	Source      string         `json:"source"`
	Fingerprint string         `json:"fingerprint"`
	LoadedAt    time.Time      `json:"loadedAt"`
	Mismatches  []string       `json:"mismatches,omitempty"`
}

type AssetListRsp struct {
	Criteria types.FilterCriteria `json:"criteria"`
	Total    int                  `json:"total"`
	Count    int                  `json:"count"`
	Assets   []types.Asset        `json:"assets"`
}

// StatisticsRsp carries the statistics of the whole catalog and of the
// filtered subset, for "N of M" display.
type StatisticsRsp struct {
	Total    types.Statistics `json:"total"`
	Filtered types.Statistics `json:"filtered"`
}

// ViewRsp is everything the dashboard renders for one filter state.
type ViewRsp struct {
	Criteria   types.FilterCriteria `json:"criteria"`
	Assets     []types.Asset        `json:"assets"`
	Statistics StatisticsRsp        `json:"statistics"`
	Colors     types.MarkerColors   `json:"colors"`
	Bounds     *types.BoundingBox   `json:"bounds,omitempty"`
	Viewport   types.Viewport       `json:"viewport"`
	Selected   *types.Asset         `json:"selected,omitempty"`
}

// LiveRequest is a message from a live view client. Seq must increase with
// every message; Reset clears the criteria and the selection.
type LiveRequest struct {
	Seq      uint64               `json:"seq"`
	Criteria types.FilterCriteria `json:"criteria"`
	Selected string               `json:"selected,omitempty"`
	Reset    bool                 `json:"reset,omitempty"`
}

// LiveResponse answers the LiveRequest with the same Seq.
//
// Reloaded marks a view pushed by the server after the catalog changed. Its
// Seq repeats the last applied request.
type LiveResponse struct {
	Seq         uint64   `json:"seq"`
	Session     string   `json:"session"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	Reloaded    bool     `json:"reloaded,omitempty"`
	View        *ViewRsp `json:"view,omitempty"`
	Error       string   `json:"error,omitempty"`
}
