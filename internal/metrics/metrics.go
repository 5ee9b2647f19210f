package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CatalogRequests  *prometheus.CounterVec
	CatalogErrors    prometheus.Counter
	RequestSeconds   *prometheus.HistogramVec
	BreweriesFilter  *prometheus.CounterVec
	FootraceSelected *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CatalogRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "taproom_catalog_requests_total",
			Help: "Total number of catalog lookups by outcome.",
		}, []string{"status"}),
		CatalogErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "taproom_catalog_errors_total",
			Help: "Total number of errors received from the catalog provider.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taproom_catalog_request_duration_seconds",
			Help:    "Duration of requests to the catalog provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		BreweriesFilter: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "taproom_breweries_filtered_total",
			Help: "Breweries returned by the catalog, split by whether they fell inside the requested radius.",
		}, []string{"result"}),
		FootraceSelected: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "taproom_footrace_selected_total",
			Help: "Breweries placed on a footrace route, by tier.",
		}, []string{"tier"}),
	}
}
