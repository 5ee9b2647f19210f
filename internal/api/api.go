// Package api exposes the brewery lookups over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/taproom/internal/catalog"
	"github.com/UnknownOlympus/taproom/internal/footrace"
	"github.com/UnknownOlympus/taproom/internal/models"
	"github.com/UnknownOlympus/taproom/internal/platform"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
)

// Finder is the part of the brewery service the handlers depend on.
type Finder interface {
	FindWithin(ctx context.Context, user models.Coordinates, radius float64) ([]models.Brewery, error)
	Footrace(ctx context.Context, user models.Coordinates, radius float64) (models.Tiers, error)
}

// locationQuery is the validated form of the lat/lng/radius query parameters.
type locationQuery struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Radius    float64 `validate:"gte=0"`
}

type nearbyResponse struct {
	Breweries []models.Brewery `json:"breweries"`
	Total     int              `json:"total"`
}

type platformResponse struct {
	OS platform.OS `json:"os"`
}

type errorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

var validate = validator.New()

// NewRouter builds the HTTP router. metricsHandler is mounted at /metrics when not nil.
func NewRouter(log *slog.Logger, svc Finder, allowedOrigins []string, metricsHandler http.Handler) *chi.Mux {
	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(accessLog(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/breweries/nearby", nearbyHandler(log, svc))
		r.Get("/breweries/footrace", footraceHandler(log, svc))
		r.Get("/platform", platformHandler())
	})

	return router
}

func nearbyHandler(log *slog.Logger, svc Finder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query, err := parseLocationQuery(r)
		if err != nil {
			log.DebugContext(ctx, "Invalid nearby query", "error", err, "request_id", RequestIDFromContext(ctx))
			writeJSON(ctx, log, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		user := models.Coordinates{Latitude: query.Latitude, Longitude: query.Longitude}
		breweries, err := svc.FindWithin(ctx, user, query.Radius)
		if err != nil {
			writeServiceError(ctx, log, w, err)
			return
		}

		writeJSON(ctx, log, w, http.StatusOK, nearbyResponse{Breweries: breweries, Total: len(breweries)})
	}
}

func footraceHandler(log *slog.Logger, svc Finder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query, err := parseLocationQuery(r)
		if err != nil {
			log.DebugContext(ctx, "Invalid footrace query", "error", err, "request_id", RequestIDFromContext(ctx))
			writeJSON(ctx, log, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		user := models.Coordinates{Latitude: query.Latitude, Longitude: query.Longitude}
		tiers, err := svc.Footrace(ctx, user, query.Radius)
		if err != nil {
			writeServiceError(ctx, log, w, err)
			return
		}

		writeJSON(ctx, log, w, http.StatusOK, tiers)
	}
}

func platformHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(platformResponse{OS: platform.Detect(r.UserAgent())})
	}
}

func parseLocationQuery(r *http.Request) (locationQuery, error) {
	var (
		query locationQuery
		err   error
	)

	values := r.URL.Query()
	if query.Latitude, err = parseFloatParam(values.Get("lat"), "lat"); err != nil {
		return locationQuery{}, err
	}
	if query.Longitude, err = parseFloatParam(values.Get("lng"), "lng"); err != nil {
		return locationQuery{}, err
	}
	if query.Radius, err = parseFloatParam(values.Get("radius"), "radius"); err != nil {
		return locationQuery{}, err
	}

	if err = validate.Struct(query); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return locationQuery{}, fmt.Errorf("%s is out of range", fieldErrs[0].Field())
		}
		return locationQuery{}, err
	}

	return query, nil
}

func parseFloatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}

	return value, nil
}

func writeServiceError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	var reqErr *catalog.RequestError

	switch {
	case errors.Is(err, footrace.ErrNoEntries):
		writeJSON(ctx, log, w, http.StatusNotFound, errorResponse{Error: "no breweries within radius"})
	case errors.As(err, &reqErr):
		log.ErrorContext(ctx, "Catalog rejected request", "status", reqErr.StatusCode, "request_id", RequestIDFromContext(ctx))
		writeJSON(ctx, log, w, http.StatusBadGateway, errorResponse{
			Error:          "catalog request failed",
			UpstreamStatus: reqErr.StatusCode,
		})
	case errors.Is(err, catalog.ErrRateLimited):
		writeJSON(ctx, log, w, http.StatusServiceUnavailable, errorResponse{Error: "catalog is busy"})
	default:
		log.ErrorContext(ctx, "Brewery lookup failed", "error", err, "request_id", RequestIDFromContext(ctx))
		writeJSON(ctx, log, w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(ctx context.Context, log *slog.Logger, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ErrorContext(ctx, "failed to write reply", "error", err)
	}
}
