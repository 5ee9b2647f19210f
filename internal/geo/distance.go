// Package geo holds the great-circle distance used for radius filtering and footrace chaining.
package geo

import (
	"math"

	"github.com/UnknownOlympus/taproom/internal/models"
)

// EarthRadiusMiles is the sphere radius used by Distance.
const EarthRadiusMiles = 3959.0

// Distance returns the great-circle distance in miles between two points using the haversine formula.
// Coordinates are not validated; out-of-range degrees still produce a number.
func Distance(from, to models.Coordinates) float64 {
	lat1 := degreesToRadians(from.Latitude)
	lat2 := degreesToRadians(to.Latitude)
	deltaLat := degreesToRadians(to.Latitude - from.Latitude)
	deltaLon := degreesToRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
