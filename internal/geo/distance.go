// ABOUTME: Great-circle distance between coordinate pairs
// ABOUTME: Used for the office radius check during visit analysis

package geo

import (
	"github.com/golang/geo/s2"

	"github.com/harper/officetime/internal/models"
)

// EarthRadiusMeters is Earth's mean radius in meters.
const EarthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two points
// given in degrees. NaN coordinates propagate to a NaN distance, which any
// radius comparison treats as out of range.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Distance returns the great-circle distance in meters between two LatLng pairs.
func Distance(a, b models.LatLng) float64 {
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng)
}
