package types

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

// FilterCriteria holds the six independent predicates applied to a catalog.
// An empty field places no constraint on the result.
type FilterCriteria struct {
	Search            string `json:"search,omitempty"`
	Country           string `json:"country,omitempty"`
	AssetType         string `json:"type,omitempty"`
	PlanetCoverage    string `json:"planet_coverage,omitempty"`
	Sentinel1Coverage string `json:"sentinel_1_coverage,omitempty"`
	Sentinel2Coverage string `json:"sentinel_2_coverage,omitempty"`
}

// Normalized returns the criteria with the free-text query trimmed. A
// whitespace-only query becomes unset.
func (c FilterCriteria) Normalized() FilterCriteria {
	c.Search = strings.TrimSpace(c.Search)
	return c
}

// IsEmpty reports whether no criterion is set.
func (c FilterCriteria) IsEmpty() bool {
	n := c.Normalized()
	return n.Search == "" &&
		n.Country == "" &&
		n.AssetType == "" &&
		n.PlanetCoverage == "" &&
		n.Sentinel1Coverage == "" &&
		n.Sentinel2Coverage == ""
}

// Statistics are the aggregate counts shown on the dashboard cards.
type Statistics struct {
	TotalAssets       int `json:"totalAssets"`
	TotalCountries    int `json:"totalCountries"`
	TotalAssetTypes   int `json:"totalAssetTypes"`
	OperationalAssets int `json:"operationalAssets"`
}

// ColorEntry is one category and its marker color.
type ColorEntry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

// MarkerColors maps asset categories to marker colors. Categories keep the
// order in which they were added, which is the order they are rendered in a
// legend.
type MarkerColors struct {
	order  []string
	colors map[string]string
}

func NewMarkerColors() MarkerColors {
	return MarkerColors{colors: make(map[string]string)}
}

// Set assigns color to category. Re-assigning keeps the original position.
func (m *MarkerColors) Set(category, color string) {
	if m.colors == nil {
		m.colors = make(map[string]string)
	}
	if _, ok := m.colors[category]; !ok {
		m.order = append(m.order, category)
	}
	m.colors[category] = color
}

func (m MarkerColors) Color(category string) (string, bool) {
	c, ok := m.colors[category]
	return c, ok
}

func (m MarkerColors) Len() int {
	return len(m.order)
}

func (m MarkerColors) Categories() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m MarkerColors) Entries() []ColorEntry {
	out := make([]ColorEntry, 0, len(m.order))
	for _, c := range m.order {
		out = append(out, ColorEntry{Category: c, Color: m.colors[c]})
	}
	return out
}

// MarshalJSON writes a JSON object whose keys appear in insertion order.
func (m MarkerColors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.colors[c])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the document.
func (m *MarkerColors) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return errors.New("marker colors: invalid JSON")
	}
	doc := gjson.ParseBytes(b)
	if !doc.IsObject() {
		return errors.New("marker colors: expected a JSON object")
	}
	*m = NewMarkerColors()
	var err error
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = fmt.Errorf("marker colors: color of %q is not a string", key.String())
			return false
		}
		m.Set(key.String(), value.String())
		return true
	})
	return err
}

// FacetOptions lists the values available to each exact-match filter.
type FacetOptions struct {
	Countries          []string `json:"countries"`
	AssetTypes         []string `json:"types"`
	PlanetCoverages    []string `json:"planet_coverages"`
	Sentinel1Coverages []string `json:"sentinel_1_coverages"`
	Sentinel2Coverages []string `json:"sentinel_2_coverages"`
}
