package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lco_optimize_requests_total",
		Help: "Optimization requests by outcome.",
	}, []string{"outcome"})

	optimizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lco_optimize_duration_seconds",
		Help:    "Time spent optimizing one page.",
		Buckets: prometheus.DefBuckets,
	})

	inputBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lco_input_bytes_total",
		Help: "Raw HTML bytes received.",
	})

	outputBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lco_output_bytes_total",
		Help: "Optimized HTML bytes returned.",
	})
)
