package api_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnknownOlympus/taproom/internal/api"
	"github.com/UnknownOlympus/taproom/internal/catalog"
	"github.com/UnknownOlympus/taproom/internal/footrace"
	"github.com/UnknownOlympus/taproom/internal/models"
	"github.com/UnknownOlympus/taproom/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var user = models.Coordinates{Latitude: 45.5, Longitude: -122.6}

func brewery(id string) models.Brewery {
	return models.Brewery{
		Coordinates: models.Coordinates{Latitude: 45.51, Longitude: -122.61},
		Located:     true,
		Fields:      map[string]any{"id": id, "name": "Brewery " + id},
	}
}

func newRouter(t *testing.T) (http.Handler, *mocks.Finder) {
	t.Helper()

	finder := mocks.NewFinder(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})

	return api.NewRouter(logger, finder, []string{"https://taproom.example"}, metricsHandler), finder
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func decode(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body
}

func TestNearbyHandler(t *testing.T) {
	t.Run("returns breweries within radius", func(t *testing.T) {
		router, finder := newRouter(t)
		finder.On("FindWithin", mock.Anything, user, 6.0).
			Return([]models.Brewery{brewery("a"), brewery("b")}, nil).Once()

		res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/nearby?lat=45.5&lng=-122.6&radius=6", nil))

		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "application/json", res.Header().Get("Content-Type"))
		assert.NotEmpty(t, res.Header().Get(api.RequestIDHeader))

		body := decode(t, res)
		assert.InDelta(t, 2.0, body["total"], 0)
		breweries, ok := body["breweries"].([]any)
		require.True(t, ok)
		require.Len(t, breweries, 2)
		first, ok := breweries[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "a", first["id"])
		assert.Equal(t, "Brewery a", first["name"])
		assert.InEpsilon(t, 45.51, first["latitude"], 0.0001)
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		router, finder := newRouter(t)
		finder.On("FindWithin", mock.Anything, user, 0.0).Return([]models.Brewery{}, nil).Once()

		res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/nearby?lat=45.5&lng=-122.6&radius=0", nil))

		require.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, `{"breweries":[],"total":0}`, res.Body.String())
	})

	invalid := []struct {
		name  string
		query string
		want  string
	}{
		{"missing lat", "lng=-122.6&radius=6", "lat is required"},
		{"non-numeric lng", "lat=45.5&lng=west&radius=6", "lng must be a number"},
		{"missing radius", "lat=45.5&lng=-122.6", "radius is required"},
		{"lat out of range", "lat=91&lng=-122.6&radius=6", "Latitude is out of range"},
		{"lng out of range", "lat=45.5&lng=-181&radius=6", "Longitude is out of range"},
		{"negative radius", "lat=45.5&lng=-122.6&radius=-1", "Radius is out of range"},
		{"NaN lat", "lat=NaN&lng=-122.6&radius=6", "Latitude is out of range"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t)

			res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/nearby?"+tt.query, nil))

			require.Equal(t, http.StatusBadRequest, res.Code)
			assert.Equal(t, tt.want, decode(t, res)["error"])
		})
	}

	t.Run("catalog status error", func(t *testing.T) {
		router, finder := newRouter(t)
		reqErr := fmt.Errorf("failed to fetch nearby breweries: %w",
			&catalog.RequestError{StatusCode: http.StatusInternalServerError, Body: "boom"})
		finder.On("FindWithin", mock.Anything, user, 6.0).Return(nil, reqErr).Once()

		res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/nearby?lat=45.5&lng=-122.6&radius=6", nil))

		require.Equal(t, http.StatusBadGateway, res.Code)
		body := decode(t, res)
		assert.Equal(t, "catalog request failed", body["error"])
		assert.InDelta(t, 500.0, body["upstream_status"], 0)
		assert.NotContains(t, body, "breweries")
	})

	t.Run("catalog rate limited", func(t *testing.T) {
		router, finder := newRouter(t)
		finder.On("FindWithin", mock.Anything, user, 6.0).
			Return(nil, fmt.Errorf("%w: %w", catalog.ErrRateLimited, assert.AnError)).Once()

		res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/nearby?lat=45.5&lng=-122.6&radius=6", nil))

		assert.Equal(t, http.StatusServiceUnavailable, res.Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		router, finder := newRouter(t)
		finder.On("FindWithin", mock.Anything, user, 6.0).Return(nil, assert.AnError).Once()

		res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/nearby?lat=45.5&lng=-122.6&radius=6", nil))

		require.Equal(t, http.StatusInternalServerError, res.Code)
		assert.Equal(t, "internal error", decode(t, res)["error"])
	})
}

func TestFootraceHandler(t *testing.T) {
	t.Run("returns tiers", func(t *testing.T) {
		router, finder := newRouter(t)
		tiers := models.Tiers{FiveK: []models.Brewery{brewery("a"), brewery("b")}, TenK: []models.Brewery{}}
		finder.On("Footrace", mock.Anything, user, 10.0).Return(tiers, nil).Once()

		res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/footrace?lat=45.5&lng=-122.6&radius=10", nil))

		require.Equal(t, http.StatusOK, res.Code)
		body := decode(t, res)
		fiveK, ok := body["5k"].([]any)
		require.True(t, ok)
		assert.Len(t, fiveK, 2)
		tenK, ok := body["10k"].([]any)
		require.True(t, ok)
		assert.Empty(t, tenK)
	})

	t.Run("no breweries within radius", func(t *testing.T) {
		router, finder := newRouter(t)
		finder.On("Footrace", mock.Anything, user, 10.0).
			Return(models.Tiers{}, fmt.Errorf("failed to build footrace: %w", footrace.ErrNoEntries)).Once()

		res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/footrace?lat=45.5&lng=-122.6&radius=10", nil))

		require.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "no breweries within radius", decode(t, res)["error"])
	})

	t.Run("invalid query", func(t *testing.T) {
		router, _ := newRouter(t)

		res := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/breweries/footrace?lat=45.5", nil))

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestPlatformHandler(t *testing.T) {
	router, _ := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/platform", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")

	res := serve(router, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"os":"linux"}`, res.Body.String())
}

func TestServiceEndpoints(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		router, _ := newRouter(t)

		res := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "OK", res.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		router, _ := newRouter(t)

		res := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "# metrics", res.Body.String())
	})

	t.Run("request id is echoed", func(t *testing.T) {
		router, _ := newRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(api.RequestIDHeader, "req-123")

		res := serve(router, req)

		assert.Equal(t, "req-123", res.Header().Get(api.RequestIDHeader))
	})

	t.Run("cors for allowed origin", func(t *testing.T) {
		router, _ := newRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://taproom.example")

		res := serve(router, req)

		assert.Equal(t, "https://taproom.example", res.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("cors for unknown origin", func(t *testing.T) {
		router, _ := newRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://elsewhere.example")

		res := serve(router, req)

		assert.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
	})
}
