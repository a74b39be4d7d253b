// Package metrics holds the Prometheus collectors shared across DipSentinel.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ProviderRequests counts history/info fetches by provider and outcome.
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dipsentinel_provider_requests_total",
			Help: "Price provider requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	// FallbackTickers counts tickers retried against the secondary provider in auto mode.
	FallbackTickers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dipsentinel_fallback_tickers_total",
			Help: "Tickers retried against the secondary provider",
		},
	)

	// ScanTickers counts tickers scanned.
	ScanTickers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dipsentinel_scan_tickers_total",
			Help: "Tickers scanned for drops",
		},
	)

	// ScanMatches counts tickers whose drop fell inside the requested band.
	ScanMatches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dipsentinel_scan_matches_total",
			Help: "Tickers matching the drop band",
		},
	)

	// ScanDuration observes the wall time of one screening batch.
	ScanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dipsentinel_scan_duration_seconds",
			Help:    "Duration of one screening batch in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"provider"},
	)

	// NewsAssessments counts safety assessments by verdict.
	NewsAssessments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dipsentinel_news_assessments_total",
			Help: "News safety assessments by verdict",
		},
		[]string{"assessment"},
	)

	// CacheRequests counts cache lookups by cache name and result.
	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dipsentinel_cache_requests_total",
			Help: "Cache lookups by cache and result (hit|miss)",
		},
		[]string{"cache", "result"},
	)

	// HTTPRequests counts API requests by route and status code.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dipsentinel_http_requests_total",
			Help: "HTTP API requests by route and status",
		},
		[]string{"route", "code"},
	)

	// HTTPDuration observes API latency by route.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dipsentinel_http_request_duration_seconds",
			Help:    "HTTP API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		ProviderRequests,
		FallbackTickers,
		ScanTickers,
		ScanMatches,
		ScanDuration,
		NewsAssessments,
		CacheRequests,
		HTTPRequests,
		HTTPDuration,
	)
}
