package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the API and the dataset pipeline.

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "feed_fetch_duration_seconds",
			Help: "Duration of feed downloads in seconds",
		},
		[]string{"feed"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Total number of failed dataset reloads",
		},
		[]string{"stage"},
	)

	DatasetRowsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows_loaded",
			Help: "Number of enriched rows in the current dataset",
		},
	)

	DeriveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "derive_duration_seconds",
			Help: "Duration of the metrics derivation pass in seconds",
		},
	)
)
