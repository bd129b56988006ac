package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes used as the "outcome" label.
const (
	OutcomeSucceeded  = "succeeded"
	OutcomeValidation = "validation"
	OutcomeTimeout    = "timeout"
	OutcomeTransport  = "transport"
	OutcomeServer     = "server"
)

// Metrics holds the collectors for one server instance. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	dispatches       *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	staleCompletions prometheus.Counter
	activeViews      prometheus.Gauge
	httpRequests     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listing_lens_dispatches_total",
				Help: "Analysis submissions by outcome",
			},
			[]string{"outcome"},
		),
		dispatchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "listing_lens_dispatch_duration_seconds",
				Help:    "Duration of calls to the analysis API",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),
		staleCompletions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "listing_lens_stale_completions_total",
				Help: "Analysis completions discarded because a newer submission was issued in the same view",
			},
		),
		activeViews: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "listing_lens_active_views",
				Help: "Number of live page views",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listing_lens_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
	}
	reg.MustRegister(m.dispatches, m.dispatchDuration, m.staleCompletions, m.activeViews, m.httpRequests)
	return m
}

// ObserveDispatch records the outcome of one submission. Validation
// failures never reach the network, so their duration is not observed.
func (m *Metrics) ObserveDispatch(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome).Inc()
	if outcome != OutcomeValidation {
		m.dispatchDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) StaleCompletion() {
	if m == nil {
		return
	}
	m.staleCompletions.Inc()
}

func (m *Metrics) SetActiveViews(n int) {
	if m == nil {
		return
	}
	m.activeViews.Set(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
