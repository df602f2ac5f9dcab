// internal/monitoring/metrics.go
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sellerscrapexter"

// Metrics holds the Prometheus instruments for the extraction service.
// A nil *Metrics is valid and records nothing, so components never need to
// guard their instrumentation calls.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal      *prometheus.CounterVec
	runDuration    prometheus.Histogram
	runActive      prometheus.Gauge
	targetsTotal   *prometheus.CounterVec
	pagesLoaded    *prometheus.CounterVec
	botChallenges  prometheus.Counter
	sellersVisited prometheus.Counter
	rowsEmitted    *prometheus.CounterVec
}

// New creates a metrics set on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed runs by terminal status.",
		}, []string{"status"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of completed runs.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		runActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_active",
			Help:      "Whether a run is currently executing.",
		}),
		targetsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "targets_total",
			Help:      "Processed targets by outcome.",
		}, []string{"outcome"}),
		pagesLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_loaded_total",
			Help:      "Pages loaded by extraction stage.",
		}, []string{"stage"}),
		botChallenges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_challenges_total",
			Help:      "Bot challenges encountered.",
		}),
		sellersVisited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sellers_visited_total",
			Help:      "Seller profile pages visited.",
		}),
		rowsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_emitted_total",
			Help:      "Output rows emitted by source.",
		}, []string{"source"}),
	}
}

// Handler serves the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RunStarted marks a run as active.
func (m *Metrics) RunStarted() {
	if m == nil {
		return
	}
	m.runActive.Set(1)
}

// RunFinished records a terminal run transition.
func (m *Metrics) RunFinished(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runActive.Set(0)
	m.runsTotal.WithLabelValues(status).Inc()
	m.runDuration.Observe(duration.Seconds())
}

// TargetProcessed records a target outcome.
func (m *Metrics) TargetProcessed(outcome string) {
	if m == nil {
		return
	}
	m.targetsTotal.WithLabelValues(outcome).Inc()
}

// PageLoaded records a page load for a stage.
func (m *Metrics) PageLoaded(stage string) {
	if m == nil {
		return
	}
	m.pagesLoaded.WithLabelValues(stage).Inc()
}

// BotChallenge records an encountered challenge page.
func (m *Metrics) BotChallenge() {
	if m == nil {
		return
	}
	m.botChallenges.Inc()
}

// SellerVisited records one profile visit.
func (m *Metrics) SellerVisited() {
	if m == nil {
		return
	}
	m.sellersVisited.Inc()
}

// RowEmitted records one output row.
func (m *Metrics) RowEmitted(source string) {
	if m == nil {
		return
	}
	m.rowsEmitted.WithLabelValues(source).Inc()
}
