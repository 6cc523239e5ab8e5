// Package metrics provides the centralized Prometheus registry for the
// primaries server.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	CyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "primaries_server",
		Name:      "cycles_total",
		Help:      "Total number of snapshot generation cycles attempted",
	})
	CycleErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "primaries_server",
		Name:      "cycle_errors_total",
		Help:      "Total number of cycles aborted by a fetch failure",
	})
	CyclesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "primaries_server",
		Name:      "cycles_skipped_total",
		Help:      "Total number of ticks skipped because the previous cycle was still running",
	})
	SourceFetchErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "primaries_server",
		Name:      "source_fetch_errors_total",
		Help:      "Total number of fetch failures by data source",
	}, []string{"source"})
	BroadcastsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "primaries_server",
		Name:      "broadcasts_total",
		Help:      "Total number of snapshots broadcast to subscribers",
	})
)

// Gauge metrics
var (
	PrimariesCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "primaries_server",
		Name:      "primaries_current",
		Help:      "Number of primaries in the current snapshot",
	})
	IgnoredRacesLastCycle = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "primaries_server",
		Name:      "ignored_races_last_cycle",
		Help:      "AP races excluded by the allow-list in the last cycle",
	})
	SubscribersConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "primaries_server",
		Name:      "subscribers_connected",
		Help:      "Number of websocket subscribers currently connected",
	})
)

// Histogram metrics
var (
	CycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "primaries_server",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of snapshot generation cycles",
		Buckets:   prometheus.DefBuckets,
	})
)

// Registry returns the global metrics registry, initializing it on first use
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			CyclesTotal,
			CycleErrorsTotal,
			CyclesSkippedTotal,
			SourceFetchErrorsTotal,
			BroadcastsTotal,
			PrimariesCurrent,
			IgnoredRacesLastCycle,
			SubscribersConnected,
			CycleDuration,
		)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
