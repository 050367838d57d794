// Package geoview turns asset sets into map geometry: GeoJSON features,
// bounding boxes and viewports.
package geoview

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	geojson "github.com/paulmach/go.geojson"

	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/pkg/types"
)

const (
	DefaultZoom = 4
	FocusZoom   = 8
)

// DefaultViewport frames the North Sea.
var DefaultViewport = types.Viewport{
	Center: types.LatLng{Lat: 60, Lng: 5},
	Zoom:   DefaultZoom,
}

// Center returns the middle of b.
func Center(b types.BoundingBox) types.LatLng {
	c := rect(b).Center()
	return types.LatLng{Lat: c.Lat.Degrees(), Lng: c.Lng.Degrees()}
}

func rect(b types.BoundingBox) s2.Rect {
	lo := s2.LatLngFromDegrees(b.South, b.West)
	hi := s2.LatLngFromDegrees(b.North, b.East)
	return s2.Rect{
		Lat: r1.Interval{
			Lo: lo.Lat.Radians(),
			Hi: hi.Lat.Radians()},
		Lng: s1.IntervalFromEndpoints(lo.Lng.Radians(), hi.Lng.Radians()),
	}
}

func latLng(a types.Asset) s2.LatLng {
	return s2.LatLngFromDegrees(a.Location.Coordinates.Latitude, a.Location.Coordinates.Longitude)
}

// Bounds returns the smallest rectangle holding every asset. It reports
// false for an empty set.
func Bounds(assets []types.Asset) (types.BoundingBox, bool) {
	if len(assets) == 0 {
		return types.BoundingBox{}, false
	}
	r := s2.EmptyRect()
	for _, a := range assets {
		r = r.AddPoint(latLng(a))
	}
	lo, hi := r.Lo(), r.Hi()
	return types.BoundingBox{
		South: lo.Lat.Degrees(),
		West:  lo.Lng.Degrees(),
		North: hi.Lat.Degrees(),
		East:  hi.Lng.Degrees(),
	}, true
}

// Focus centres the map on a at FocusZoom.
func Focus(a types.Asset) types.Viewport {
	return types.Viewport{
		Center: types.LatLng{
			Lat: a.Location.Coordinates.Latitude,
			Lng: a.Location.Coordinates.Longitude,
		},
		Zoom: FocusZoom,
	}
}

// FeatureCollection builds one point feature per asset, in catalog order.
func FeatureCollection(assets []types.Asset, colors types.MarkerColors) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, a := range assets {
		fc.AddFeature(Feature(a, colors))
	}
	if b, ok := Bounds(assets); ok {
		fc.BoundingBox = b.GeoJSON()
	}
	return fc
}

func Feature(a types.Asset, colors types.MarkerColors) *geojson.Feature {
	f := geojson.NewPointFeature([]float64{
		a.Location.Coordinates.Longitude,
		a.Location.Coordinates.Latitude,
	})
	f.ID = a.AssetID
	markerColor, ok := colors.Color(a.BasicInfo.Type)
	if !ok {
		markerColor = catalogview.DefaultStatusColor
	}
	f.SetProperty("asset_id", a.AssetID)
	f.SetProperty("name", a.BasicInfo.Name)
	f.SetProperty("type", a.BasicInfo.Type)
	f.SetProperty("country", a.Location.Country)
	f.SetProperty("region", a.Location.Region)
	f.SetProperty("status", a.OperationalData.CurrentStatus)
	f.SetProperty("operational", catalogview.IsOperational(a.OperationalData.CurrentStatus))
	f.SetProperty("status_color", catalogview.StatusColor(a.OperationalData.CurrentStatus))
	f.SetProperty("marker_color", markerColor)
	f.SetProperty("planet_data_coverage", a.PlanetDataCoverage)
	f.SetProperty("sentinel_1_coverage", a.Sentinel1Coverage)
	f.SetProperty("sentinel_2_coverage", a.Sentinel2Coverage)
	if !a.Ownership.EquinorShare.IsEmpty() {
		f.SetProperty("equinor_share", a.Ownership.EquinorShare.String())
	}
	return f
}
