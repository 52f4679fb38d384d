// services/metrics.go
package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_uploads_total",
		Help: "Report files processed, by detected format and outcome.",
	}, []string{"format", "status"})

	uploadRecords = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_upload_records",
		Help:    "Records per successfully loaded report.",
		Buckets: prometheus.ExponentialBuckets(10, 2, 10),
	})

	filterRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_filter_requests_total",
		Help: "Filter changes applied to report sessions.",
	})
)
