package services

import (
	"cyber-map-service/internal/domain"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by HaversineKm.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// HaversineKm returns the great-circle distance in kilometers between two
// coordinates on a spherical Earth.
//
// Inputs are not validated: out-of-range or NaN degrees yield whatever the
// formula produces.
func HaversineKm(from, to domain.Coordinates) float64 {
	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	dLat := toRadians(to.Lat - from.Lat)
	dLon := toRadians(to.Lon - from.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}
