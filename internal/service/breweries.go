package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/taproom/internal/catalog"
	"github.com/UnknownOlympus/taproom/internal/footrace"
	"github.com/UnknownOlympus/taproom/internal/geo"
	"github.com/UnknownOlympus/taproom/internal/metrics"
	"github.com/UnknownOlympus/taproom/internal/models"
)

// BreweryService answers "what is near me" questions on top of a catalog provider.
// It keeps no state between calls: every call makes exactly one catalog request.
type BreweryService struct {
	log          *slog.Logger     // Logger for logging service activities
	provider     catalog.Provider // Catalog provider for nearby lookups
	providerName string           // Name of the provider for metrics labeling
	metrics      *metrics.Metrics // Metrics for tracking service performance
}

// NewBreweryService creates a new instance of BreweryService.
func NewBreweryService(
	log *slog.Logger,
	provider catalog.Provider,
	providerName string,
	metrics *metrics.Metrics,
) *BreweryService {
	return &BreweryService{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
	}
}

// FindWithin fetches one page of breweries nearest to user and keeps those whose
// great-circle distance is at most radius miles. Catalog failures are returned
// unchanged in the error chain, so a *catalog.RequestError stays reachable via errors.As.
func (bs *BreweryService) FindWithin(
	ctx context.Context,
	user models.Coordinates,
	radius float64,
) ([]models.Brewery, error) {
	bs.log.DebugContext(ctx, "Looking up breweries", "lat", user.Latitude, "lng", user.Longitude, "radius", radius)

	startTime := time.Now()
	breweries, err := bs.provider.Nearby(ctx, user)
	duration := time.Since(startTime).Seconds()
	bs.metrics.RequestSeconds.WithLabelValues(bs.providerName).Observe(duration)

	if err != nil {
		bs.log.ErrorContext(ctx, "Failed to fetch breweries from catalog", "error", err)
		bs.metrics.CatalogRequests.WithLabelValues("failure").Inc()
		bs.metrics.CatalogErrors.Inc()
		return nil, fmt.Errorf("failed to fetch nearby breweries: %w", err)
	}

	bs.metrics.CatalogRequests.WithLabelValues("success").Inc()

	within := make([]models.Brewery, 0, len(breweries))
	for _, b := range breweries {
		if geo.Distance(user, b.Coordinates) <= radius {
			within = append(within, b)
		}
	}

	bs.metrics.BreweriesFilter.WithLabelValues("inside").Add(float64(len(within)))
	bs.metrics.BreweriesFilter.WithLabelValues("outside").Add(float64(len(breweries) - len(within)))

	bs.log.InfoContext(ctx, "Breweries filtered by radius",
		"received", len(breweries),
		"within", len(within),
		"radius", radius)

	return within, nil
}

// Footrace finds breweries within radius miles of user and arranges them into
// "5k" and "10k" route tiers. When nothing is within the radius the returned
// error wraps footrace.ErrNoEntries.
func (bs *BreweryService) Footrace(
	ctx context.Context,
	user models.Coordinates,
	radius float64,
) (models.Tiers, error) {
	within, err := bs.FindWithin(ctx, user, radius)
	if err != nil {
		return models.Tiers{}, err
	}

	tiers, err := footrace.Bucket(user, within)
	if err != nil {
		bs.log.InfoContext(ctx, "No breweries to build a footrace from", "radius", radius)
		return models.Tiers{}, fmt.Errorf("failed to build footrace: %w", err)
	}

	bs.metrics.FootraceSelected.WithLabelValues("5k").Add(float64(len(tiers.FiveK)))
	bs.metrics.FootraceSelected.WithLabelValues("10k").Add(float64(len(tiers.TenK)))

	bs.log.DebugContext(ctx, "Footrace built",
		"five_k", len(tiers.FiveK),
		"ten_k", len(tiers.TenK),
		"skipped", len(within)-len(tiers.FiveK)-len(tiers.TenK))

	return tiers, nil
}
