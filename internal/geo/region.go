package geo

import (
	"fmt"
	"math"
)

// Region is an inclusive latitude/longitude bounding box.
type Region struct {
	Name   string
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Coordinates are client-reported WGS84 degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Sweden is the default admission region.
var Sweden = Region{Name: "Sweden", MinLat: 55.3, MaxLat: 69.1, MinLon: 11.1, MaxLon: 24.2}

// China is the default informational region reported by location messages.
var China = Region{Name: "China", MinLat: 18, MaxLat: 54, MinLon: 73, MaxLon: 135}

// Contains reports whether the point lies inside r, bounds included.
func (r Region) Contains(lat, lon float64) bool {
	if !Valid(lat, lon) {
		return false
	}
	return lat >= r.MinLat && lat <= r.MaxLat &&
		lon >= r.MinLon && lon <= r.MaxLon
}

func (r Region) String() string {
	name := r.Name
	if name == "" {
		name = "region"
	}
	return fmt.Sprintf("%s[lat %g..%g, lon %g..%g]", name, r.MinLat, r.MaxLat, r.MinLon, r.MaxLon)
}

// Valid rejects NaN, infinities and values outside the WGS84 range.
func Valid(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// MapsURL links the point on Google Maps.
func MapsURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", lat, lon)
}
