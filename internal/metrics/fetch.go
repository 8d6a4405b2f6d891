package metrics

import "github.com/prometheus/client_golang/prometheus"

// Plastics listing metrics. surface is one of api, html, csv, bot, export.
var (
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plastwarehouse",
			Name:      "plastics_fetch_duration_seconds",
			Help:      "Duration of plastics listing queries in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"surface", "status"},
	)

	FetchRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plastwarehouse",
			Name:      "plastics_fetch_rows",
			Help:      "Number of rows returned by plastics listing queries",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 75, 100},
		},
		[]string{"surface"},
	)

	CatalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plastwarehouse",
			Name:      "catalog_cache_total",
			Help:      "Material catalog cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plastwarehouse",
			Name:      "exports_total",
			Help:      "Spreadsheet exports archived to object storage",
		},
		[]string{"trigger", "status"},
	)
)

func init() {
	prometheus.MustRegister(FetchDuration, FetchRows, CatalogCacheTotal, ExportsTotal)
}
