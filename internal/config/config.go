package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the taproom service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port the HTTP API listens on.
// - Catalog: Settings for the brewery catalog provider.
// - AllowedOrigins: Origins allowed to call the API from a browser.
type Config struct {
	Env            string        // Env is the current environment: local, development, production.
	Port           int           // Port is the HTTP API port.
	Catalog        CatalogConfig // Catalog holds the catalog provider configuration.
	AllowedOrigins []string      // AllowedOrigins is the CORS allow-list.
}

// CatalogConfig holds the settings for the brewery catalog provider.
type CatalogConfig struct {
	ProviderType string        // ProviderType specifies which catalog provider to use.
	BaseURL      string        // BaseURL overrides the Open Brewery DB endpoint.
	Timeout      time.Duration // Timeout for a single catalog request.
	RateLimit    int           // RateLimit in requests per second, 0 disables pacing.
	StaticFile   string        // StaticFile is the JSON data file for the static provider.
}

// MustLoad reads the configuration from the environment (and an optional .env file) and returns a Config struct.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TAPROOM")
	v.AutomaticEnv()

	v.SetDefault("ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("PROVIDER_TYPE", "openbrewerydb")
	v.SetDefault("CATALOG_URL", "")
	v.SetDefault("CATALOG_TIMEOUT", "10s")
	v.SetDefault("CATALOG_RATE_LIMIT", "5")
	v.SetDefault("STATIC_FILE", "")
	v.SetDefault("ALLOWED_ORIGINS", "*")

	port, err := strconv.Atoi(v.GetString("PORT"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	timeout, err := time.ParseDuration(v.GetString("CATALOG_TIMEOUT"))
	if err != nil {
		panic("failed to parse catalog timeout from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("CATALOG_RATE_LIMIT"))
	if err != nil || rateLimit < 0 {
		panic("failed to parse catalog rate limit from configuration, must be a non-negative integer")
	}

	return &Config{
		Env:  v.GetString("ENV"),
		Port: port,
		Catalog: CatalogConfig{
			ProviderType: v.GetString("PROVIDER_TYPE"),
			BaseURL:      v.GetString("CATALOG_URL"),
			Timeout:      timeout,
			RateLimit:    rateLimit,
			StaticFile:   v.GetString("STATIC_FILE"),
		},
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
