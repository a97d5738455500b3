package scanner

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coursescanner_catalog_requests_total",
		Help: "The total number of catalog API requests, by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	catalogLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coursescanner_catalog_request_seconds",
		Help:    "Catalog API request latency, retries included",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func observe(endpoint string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	catalogRequests.WithLabelValues(endpoint, outcome).Inc()
	catalogLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
