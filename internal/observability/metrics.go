package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "airlink", Name: "store_ops_total", Help: "Repository operations by entity, operation and outcome"},
		[]string{"entity", "op", "outcome"},
	)
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "airlink", Name: "logins_total", Help: "Login attempts by outcome"},
		[]string{"outcome"},
	)
	ReportsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "airlink", Name: "reports_generated_total", Help: "Trips reports written successfully"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "airlink", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "airlink",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
