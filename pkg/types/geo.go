package types

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport is what the map shows: a centre and a zoom level.
type Viewport struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}

// BoundingBox is a lat/lng rectangle. West is greater than East when the
// box crosses the antimeridian.
type BoundingBox struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// GeoJSON returns the box in GeoJSON bbox order.
func (b BoundingBox) GeoJSON() []float64 {
	return []float64{b.West, b.South, b.East, b.North}
}
