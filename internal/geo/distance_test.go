package geo_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/taproom/internal/geo"
	"github.com/UnknownOlympus/taproom/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		d := geo.Distance(models.Coordinates{}, models.Coordinates{Latitude: 0, Longitude: 1})

		assert.InDelta(t, geo.EarthRadiusMiles*math.Pi/180, d, 1e-9)
		assert.InDelta(t, 69.17, d, 0.1)
	})

	t.Run("same point", func(t *testing.T) {
		points := []models.Coordinates{
			{Latitude: 0, Longitude: 0},
			{Latitude: 45.5231, Longitude: -122.6765},
			{Latitude: -89.9, Longitude: 179.9},
		}
		for _, p := range points {
			assert.Zero(t, geo.Distance(p, p))
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		pairs := [][2]models.Coordinates{
			{{Latitude: 39.7392, Longitude: -104.9903}, {Latitude: 40.0150, Longitude: -105.2705}},
			{{Latitude: -33.8688, Longitude: 151.2093}, {Latitude: 51.5074, Longitude: -0.1278}},
			{{Latitude: 0, Longitude: 179.5}, {Latitude: 0, Longitude: -179.5}},
		}
		for _, p := range pairs {
			assert.InDelta(t, geo.Distance(p[0], p[1]), geo.Distance(p[1], p[0]), 1e-9)
		}
	})

	t.Run("antimeridian is short", func(t *testing.T) {
		d := geo.Distance(models.Coordinates{Longitude: 179.5}, models.Coordinates{Longitude: -179.5})

		assert.InDelta(t, 69.1, d, 0.01)
	})

	t.Run("denver to boulder", func(t *testing.T) {
		d := geo.Distance(
			models.Coordinates{Latitude: 39.7392, Longitude: -104.9903},
			models.Coordinates{Latitude: 40.0150, Longitude: -105.2705},
		)

		assert.InDelta(t, 24.0, d, 0.5)
	})
}
