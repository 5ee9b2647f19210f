package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/taproom/internal/models"
	"golang.org/x/time/rate"
)

// OpenBreweryBaseURL -- Open Brewery DB list endpoint.
const OpenBreweryBaseURL = "https://api.openbrewerydb.org/breweries"

// maxErrorBodyBytes caps how much of a failed response is kept in RequestError.
const maxErrorBodyBytes = 4 << 10

const defaultUserAgent = "Taproom-Service/1.0 (https://github.com/UnknownOlympus/taproom)"

// OpenBreweryProvider implements the Provider interface using the public Open Brewery DB API.
// The API sorts by distance server-side but has no radius parameter, so callers filter locally.
type OpenBreweryProvider struct {
	client    HTTPClient    // HTTP client for making requests
	baseURL   string        // Base URL for the list endpoint
	userAgent string        // User-Agent sent with every request
	log       *slog.Logger  // Logger for logging operations
	limiter   *rate.Limiter // Outbound request pacing
}

// NewOpenBreweryProvider creates a new Open Brewery DB provider with its own HTTP client.
// An empty baseURL selects OpenBreweryBaseURL; a non-positive rateLimit disables pacing.
func NewOpenBreweryProvider(
	baseURL string,
	timeout time.Duration,
	rateLimit int,
	log *slog.Logger,
) *OpenBreweryProvider {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), rateLimit)
	}

	return NewOpenBreweryProviderWithClient(&http.Client{Timeout: timeout}, baseURL, limiter, log)
}

// NewOpenBreweryProviderWithClient allows injecting a custom HTTP client and limiter.
func NewOpenBreweryProviderWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *OpenBreweryProvider {
	if baseURL == "" {
		baseURL = OpenBreweryBaseURL
	}

	return &OpenBreweryProvider{
		client:    client,
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		log:       log,
		limiter:   limiter,
	}
}

// Nearby fetches one page of breweries ordered by distance from coords.
// A non-success status yields a *RequestError and no records. The call is not retried.
func (op *OpenBreweryProvider) Nearby(ctx context.Context, coords models.Coordinates) ([]models.Brewery, error) {
	if err := op.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	reqURL, err := url.Parse(op.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("by_dist", formatDistanceOrigin(coords))
	query.Set("per_page", strconv.Itoa(PageSize))
	reqURL.RawQuery = query.Encode()

	op.log.DebugContext(ctx, "Open Brewery DB request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", op.userAgent)

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		op.log.ErrorContext(ctx, "Open Brewery DB API error", "status", resp.StatusCode, "body", string(body))
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var records []models.Brewery
	if err = json.Unmarshal(body, &records); err != nil {
		op.log.ErrorContext(ctx, "Failed to parse Open Brewery DB response", "error", err)
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	located := dropUnlocated(ctx, op.log, records)

	op.log.DebugContext(ctx, "Open Brewery DB returned breweries",
		"received", len(records),
		"located", len(located))

	return located, nil
}

func formatDistanceOrigin(coords models.Coordinates) string {
	return strconv.FormatFloat(coords.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(coords.Longitude, 'f', -1, 64)
}

// dropUnlocated removes records without usable coordinates; they cannot be measured.
func dropUnlocated(ctx context.Context, log *slog.Logger, records []models.Brewery) []models.Brewery {
	located := make([]models.Brewery, 0, len(records))
	for _, rec := range records {
		if rec.CoordinateErr != nil {
			log.DebugContext(ctx, "Skipping brewery with malformed coordinates",
				"id", rec.ID(), "name", rec.Name(), "error", rec.CoordinateErr)
			continue
		}
		if !rec.Located {
			log.DebugContext(ctx, "Skipping brewery without coordinates", "id", rec.ID(), "name", rec.Name())
			continue
		}
		located = append(located, rec)
	}

	return located
}
