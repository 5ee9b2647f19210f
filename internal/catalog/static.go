package catalog

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/UnknownOlympus/taproom/internal/geo"
	"github.com/UnknownOlympus/taproom/internal/models"
)

// ErrStaticFileRequired is returned when the static provider is selected without a data file.
var ErrStaticFileRequired = errors.New("data file is required for static provider")

// StaticProvider serves breweries from a fixed in-memory list, typically loaded from a
// JSON file in the same format the Open Brewery DB API returns. It mimics the remote
// endpoint: nearest first, at most PageSize records.
type StaticProvider struct {
	records []models.Brewery
	log     *slog.Logger
}

// NewStaticProvider creates a provider over the given records. Unlocated records are ignored.
func NewStaticProvider(records []models.Brewery, log *slog.Logger) *StaticProvider {
	return &StaticProvider{records: dropUnlocated(context.Background(), log, records), log: log}
}

// LoadStaticProvider reads a JSON array of catalog records from path.
func LoadStaticProvider(path string, log *slog.Logger) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read static catalog: %w", err)
	}

	var records []models.Brewery
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode static catalog: %w", err)
	}

	log.Info("Static catalog loaded", "path", path, "records", len(records))

	return NewStaticProvider(records, log), nil
}

// Nearby returns up to PageSize records ordered by distance from coords.
func (sp *StaticProvider) Nearby(ctx context.Context, coords models.Coordinates) ([]models.Brewery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sorted := slices.Clone(sp.records)
	slices.SortStableFunc(sorted, func(a, b models.Brewery) int {
		return cmp.Compare(geo.Distance(coords, a.Coordinates), geo.Distance(coords, b.Coordinates))
	})

	if len(sorted) > PageSize {
		sorted = sorted[:PageSize]
	}

	sp.log.DebugContext(ctx, "Static catalog lookup", "returned", len(sorted))

	return sorted, nil
}
