// Package footrace groups breweries into two running-route tiers by walking a
// nearest-first chain from the brewery closest to the user.
package footrace

import (
	"cmp"
	"errors"
	"slices"

	"github.com/UnknownOlympus/taproom/internal/geo"
	"github.com/UnknownOlympus/taproom/internal/models"
)

// Tier limits on the accumulated chain distance, in miles.
// The values are 10 km and 20 km although the tiers are labelled "5k" and "10k";
// they are kept as-is until the intended course lengths are confirmed.
const (
	FiveKThresholdMiles = 6.21371
	TenKThresholdMiles  = 12.4274
)

// ErrNoEntries is returned when there is no brewery to start the route from.
var ErrNoEntries = errors.New("footrace requires at least one brewery")

// Bucket sorts breweries by distance from user and walks them in that order.
// The nearest brewery always opens the "5k" tier. Every following brewery adds its
// distance from the previously selected one to a running total, and lands in "5k"
// or "10k" depending on that total. The walk stops at the first brewery that would
// push the total past TenKThresholdMiles.
func Bucket(user models.Coordinates, breweries []models.Brewery) (models.Tiers, error) {
	if len(breweries) == 0 {
		return models.Tiers{}, ErrNoEntries
	}

	type candidate struct {
		idx      int
		distance float64
	}

	order := make([]candidate, len(breweries))
	for i, b := range breweries {
		order[i] = candidate{idx: i, distance: geo.Distance(user, b.Coordinates)}
	}
	slices.SortStableFunc(order, func(a, b candidate) int {
		return cmp.Compare(a.distance, b.distance)
	})

	tiers := models.Tiers{FiveK: []models.Brewery{}, TenK: []models.Brewery{}}
	visited := make(map[int]struct{}, len(order))

	prev := breweries[order[0].idx]
	tiers.FiveK = append(tiers.FiveK, prev)
	visited[order[0].idx] = struct{}{}

	var total float64
	for _, c := range order[1:] {
		if _, seen := visited[c.idx]; seen {
			continue
		}

		next := breweries[c.idx]
		total += geo.Distance(prev.Coordinates, next.Coordinates)

		switch {
		case total <= FiveKThresholdMiles:
			tiers.FiveK = append(tiers.FiveK, next)
		case total <= TenKThresholdMiles:
			tiers.TenK = append(tiers.TenK, next)
		default:
			return tiers, nil
		}

		visited[c.idx] = struct{}{}
		prev = next
	}

	return tiers, nil
}
