package catalog

import (
	"fmt"
	"log/slog"
	"time"
)

// ProviderType represents the type of catalog provider.
type ProviderType string

const (
	// ProviderTypeOpenBreweryDB represents the public Open Brewery DB API.
	ProviderTypeOpenBreweryDB ProviderType = "openbrewerydb"
	// ProviderTypeStatic represents a catalog read from a local JSON file.
	ProviderTypeStatic ProviderType = "static"
)

// ProviderConfig holds configuration for creating a catalog provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	BaseURL   string        // Endpoint override (Open Brewery DB provider)
	Timeout   time.Duration // HTTP client timeout (Open Brewery DB provider)
	RateLimit int           // Requests per second, 0 disables pacing (Open Brewery DB provider)
	DataFile  string        // JSON records file (static provider)
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a catalog provider based on the provided configuration.
//
// Supported provider types:
// - "openbrewerydb": Open Brewery DB list endpoint (no API key required)
// - "static": JSON file with records in the Open Brewery DB format
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeOpenBreweryDB:
		return newOpenBreweryProvider(config)
	case ProviderTypeStatic:
		return newStaticProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newOpenBreweryProvider(config ProviderConfig) (Provider, error) {
	if config.Timeout <= 0 {
		const defaultTimeout = 10 * time.Second
		config.Timeout = defaultTimeout
		config.Logger.Warn("Timeout for Open Brewery DB not set, set a default value", "value", config.Timeout)
	}

	return NewOpenBreweryProvider(config.BaseURL, config.Timeout, config.RateLimit, config.Logger), nil
}

func newStaticProvider(config ProviderConfig) (Provider, error) {
	if config.DataFile == "" {
		return nil, ErrStaticFileRequired
	}

	provider, err := LoadStaticProvider(config.DataFile, config.Logger)
	if err != nil {
		return nil, err
	}

	return provider, nil
}
