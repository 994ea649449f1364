package spatial

import (
	"github.com/golang/geo/s2"
)

// HaversineMiles calculates the great-circle distance between two points in miles
// using the Haversine formula
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	return centralAngle(lat1, lon1, lat2, lon2) * EarthRadiusMiles
}

// centralAngle returns the angle in radians subtended by the two points.
// s2.LatLng.Distance evaluates the haversine formula.
func centralAngle(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians()
}

// MilesToKm converts a distance in miles to kilometers
func MilesToKm(miles float64) float64 {
	return miles * KmPerMile
}

// Constants
const (
	EarthRadiusMiles = 3956.0 // Earth radius used for running distances
	KmPerMile        = 1.60934
)
