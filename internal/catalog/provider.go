package catalog

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/taproom/internal/models"
)

// PageSize is the number of nearest records requested from the catalog in a single call.
const PageSize = 50

// Provider is an interface that defines a method for looking up breweries around a point.
// Nearby returns at most PageSize located records ordered by distance from the given coordinates.
type Provider interface {
	Nearby(ctx context.Context, coords models.Coordinates) ([]models.Brewery, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
