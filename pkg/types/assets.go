package types

import (
	"bytes"
	"strings"

	json "github.com/json-iterator/go"
)

// Asset is one cataloged facility or installation.
type Asset struct {
	AssetID            string          `json:"asset_id" validate:"required"`
	BasicInfo          BasicInfo       `json:"basic_info"`
	Location           Location        `json:"location"`
	OperationalData    OperationalData `json:"operational_data"`
	Ownership          Ownership       `json:"ownership"`
	PlanetDataCoverage string          `json:"planet_data_coverage" validate:"required,notblank"`
	Sentinel1Coverage  string          `json:"sentinel_1_coverage" validate:"required,notblank"`
	Sentinel2Coverage  string          `json:"sentinel_2_coverage" validate:"required,notblank"`
}

type BasicInfo struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required,notblank"`
	Description string `json:"description,omitempty"`
}

type Location struct {
	Country      string      `json:"country"`
	Region       string      `json:"region"`
	NearbyCities string      `json:"nearby_cities,omitempty"`
	Coordinates  Coordinates `json:"coordinates"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type OperationalData struct {
	CurrentStatus      string       `json:"current_status"`
	ProductionCapacity DisplayValue `json:"production_capacity,omitempty"`
	YearCommissioned   DisplayValue `json:"year_commissioned,omitempty"`
}

type Ownership struct {
	EquinorShare DisplayValue `json:"equinor_share,omitempty"`
	Operator     string       `json:"operator,omitempty"`
}

// DisplayValue holds a field that the source data carries either as a
// string or as a number. It is never interpreted, only shown.
type DisplayValue struct {
	raw json.RawMessage
}

func NewDisplayValue(s string) DisplayValue {
	b, _ := json.Marshal(s)
	return DisplayValue{raw: b}
}

func (d DisplayValue) IsEmpty() bool {
	return len(d.raw) == 0 || bytes.Equal(d.raw, []byte("null"))
}

// String renders the value without JSON quoting.
func (d DisplayValue) String() string {
	if d.IsEmpty() {
		return ""
	}
	var s string
	if err := json.Unmarshal(d.raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(d.raw))
}

func (d DisplayValue) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return []byte("null"), nil
	}
	return d.raw, nil
}

func (d *DisplayValue) UnmarshalJSON(b []byte) error {
	d.raw = append(d.raw[:0], b...)
	return nil
}

// Metadata describes the catalog as a whole.
type Metadata struct {
	LastUpdated string `json:"last_updated"`
	TotalAssets int    `json:"total_assets"`
	Countries   int    `json:"countries"`
	AssetTypes  int    `json:"asset_types"`
	Description string `json:"description,omitempty"`
}

// AssetsDatabase is the root of a catalog document.
type AssetsDatabase struct {
	Metadata Metadata `json:"metadata"`
	Assets   []Asset  `json:"assets" validate:"dive"`
}
