package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	strataerrors "quarry-hq/strata/pkg/strata/errors"
)

// LoaderMetrics tracks metrics for document loading.
//
// Metrics:
//   - strata_loader_documents_total: documents processed by mode and status
//   - strata_loader_failures_total: failures by diagnostic kind
//   - strata_loader_batch_duration_seconds: batch duration histogram
//   - strata_loader_batch_size: documents per batch histogram
type LoaderMetrics struct {
	documentsTotal *prometheus.CounterVec
	failuresTotal  *prometheus.CounterVec
	batchDuration  *prometheus.HistogramVec
	batchSize      prometheus.Histogram
}

// NewLoaderMetrics creates and registers loader metrics with the provided
// registry.
func NewLoaderMetrics(namespace, subsystem string, registry *prometheus.Registry) *LoaderMetrics {
	lm := &LoaderMetrics{
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "documents_total",
				Help:      "Total number of documents processed",
			},
			[]string{"mode", "status"},
		),

		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "failures_total",
				Help:      "Total number of load failures by diagnostic kind",
			},
			[]string{"kind"},
		),

		batchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_duration_seconds",
				Help:      "Duration of batch load calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~16s
			},
			[]string{"mode"},
		),

		batchSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_size",
				Help:      "Number of documents per batch call",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16K
			},
		),
	}

	registry.MustRegister(
		lm.documentsTotal,
		lm.failuresTotal,
		lm.batchDuration,
		lm.batchSize,
	)

	return lm
}

// RecordBatch records one batch load call. Mode is "safe" or "unsafe".
// On failure every document in the batch counts as failed, matching the
// loader's all-or-nothing result shape.
func (lm *LoaderMetrics) RecordBatch(mode string, size int, duration time.Duration, err error) {
	lm.batchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	lm.batchSize.Observe(float64(size))

	status := "loaded"
	if err != nil {
		status = "failed"
		lm.RecordFailure(err)
	}
	lm.documentsTotal.WithLabelValues(mode, status).Add(float64(size))
}

// RecordDocument records a single document outcome outside a batch call.
func (lm *LoaderMetrics) RecordDocument(mode string, err error) {
	status := "loaded"
	if err != nil {
		status = "failed"
		lm.RecordFailure(err)
	}
	lm.documentsTotal.WithLabelValues(mode, status).Inc()
}

// RecordFailure counts a failure under its diagnostic kind.
func (lm *LoaderMetrics) RecordFailure(err error) {
	kind := strataerrors.KindOf(err)
	if kind == "" {
		kind = "other"
	}
	lm.failuresTotal.WithLabelValues(string(kind)).Inc()
}
