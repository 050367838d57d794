package apis

import (
	"net/url"
	"unicode/utf8"

	"github.com/assetdash/assetdash/pkg/api"
	"github.com/assetdash/assetdash/pkg/types"
)

const maxCriterionLength = 256

// CriteriaFromQuery reads the filter criteria from URL query parameters.
// Absent parameters leave the criterion unset.
func CriteriaFromQuery(q url.Values) (types.FilterCriteria, error) {
	c := types.FilterCriteria{
		Search:            q.Get(api.QuerySearch),
		Country:           q.Get(api.QueryCountry),
		AssetType:         q.Get(api.QueryType),
		PlanetCoverage:    q.Get(api.QueryPlanetCoverage),
		Sentinel1Coverage: q.Get(api.QuerySentinel1Coverage),
		Sentinel2Coverage: q.Get(api.QuerySentinel2Coverage),
	}
	if err := ValidateCriteria(c); err != nil {
		return types.FilterCriteria{}, err
	}
	return c.Normalized(), nil
}

// ValidateCriteria rejects values no catalog field could hold.
func ValidateCriteria(c types.FilterCriteria) error {
	for name, v := range map[string]string{
		api.QuerySearch:            c.Search,
		api.QueryCountry:           c.Country,
		api.QueryType:              c.AssetType,
		api.QueryPlanetCoverage:    c.PlanetCoverage,
		api.QuerySentinel1Coverage: c.Sentinel1Coverage,
		api.QuerySentinel2Coverage: c.Sentinel2Coverage,
	} {
		if !utf8.ValidString(v) {
			return ErrInvalidCriteria.Suffix(name + " is not valid UTF-8")
		}
		if utf8.RuneCountInString(v) > maxCriterionLength {
			return ErrInvalidCriteria.Suffix(name + " is too long")
		}
	}
	return nil
}

// ToQuery is the inverse of CriteriaFromQuery.
func ToQuery(c types.FilterCriteria) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set(api.QuerySearch, c.Search)
	set(api.QueryCountry, c.Country)
	set(api.QueryType, c.AssetType)
	set(api.QueryPlanetCoverage, c.PlanetCoverage)
	set(api.QuerySentinel1Coverage, c.Sentinel1Coverage)
	set(api.QuerySentinel2Coverage, c.Sentinel2Coverage)
	return q
}
