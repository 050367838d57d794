// Package catalogview derives everything the dashboard shows from an asset
// catalog: the filtered subset, category colors, statistics and facets.
// All functions are pure and never modify their input.
package catalogview

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/assetdash/assetdash/pkg/types"
)

// Filter returns the assets that satisfy every set criterion, preserving
// catalog order. With no criterion set the result equals assets.
func Filter(assets []types.Asset, criteria types.FilterCriteria) []types.Asset {
	c := criteria.Normalized()
	if c.IsEmpty() {
		out := make([]types.Asset, len(assets))
		copy(out, assets)
		return out
	}
	m := newMatcher(c)
	return lo.Filter(assets, func(a types.Asset, _ int) bool {
		return m.match(a)
	})
}

// Matches reports whether a single asset satisfies criteria.
func Matches(asset types.Asset, criteria types.FilterCriteria) bool {
	return newMatcher(criteria.Normalized()).match(asset)
}

// matcher is not safe for concurrent use; the caser keeps state.
type matcher struct {
	criteria types.FilterCriteria
	query    string
	caser    cases.Caser
}

func newMatcher(c types.FilterCriteria) *matcher {
	m := &matcher{
		criteria: c,
		caser:    cases.Fold(),
	}
	if c.Search != "" {
		m.query = m.caser.String(c.Search)
	}
	return m
}

func (m *matcher) match(a types.Asset) bool {
	c := m.criteria
	if c.Country != "" && a.Location.Country != c.Country {
		return false
	}
	if c.AssetType != "" && a.BasicInfo.Type != c.AssetType {
		return false
	}
	if c.PlanetCoverage != "" && a.PlanetDataCoverage != c.PlanetCoverage {
		return false
	}
	if c.Sentinel1Coverage != "" && a.Sentinel1Coverage != c.Sentinel1Coverage {
		return false
	}
	if c.Sentinel2Coverage != "" && a.Sentinel2Coverage != c.Sentinel2Coverage {
		return false
	}
	if m.query != "" && !m.matchSearch(a) {
		return false
	}
	return true
}

func (m *matcher) matchSearch(a types.Asset) bool {
	for _, field := range searchFields(a) {
		if field == "" {
			continue
		}
		if strings.Contains(m.caser.String(field), m.query) {
			return true
		}
	}
	return false
}

// searchFields lists the text a free-text query is matched against.
func searchFields(a types.Asset) []string {
	return []string{
		a.BasicInfo.Name,
		a.Location.Country,
		a.Location.Region,
		a.BasicInfo.Type,
		a.Location.NearbyCities,
	}
}
