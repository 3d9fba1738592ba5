// Package telemetry exposes Prometheus metrics for saves and derivations.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	savesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reworkdesk_saves_total",
		Help: "Save attempts by outcome",
	}, []string{"outcome"})

	saveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reworkdesk_save_duration_seconds",
		Help:    "Duration of save operations",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	recomputationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reworkdesk_recomputations_total",
		Help: "Derived view recomputations by view",
	}, []string{"view"})

	storeRevision = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reworkdesk_store_revision",
		Help: "Latest observed store revision",
	})
)

// RecordSave counts one save with its outcome and duration.
func RecordSave(outcome string, elapsed time.Duration) {
	savesTotal.WithLabelValues(outcome).Inc()
	saveDuration.Observe(elapsed.Seconds())
}

// RecordRecompute counts one recomputation of a derived view.
func RecordRecompute(view string) {
	recomputationsTotal.WithLabelValues(view).Inc()
}

// SetStoreRevision publishes the latest store revision.
func SetStoreRevision(revision int64) {
	storeRevision.Set(float64(revision))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
