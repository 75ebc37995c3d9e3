// Package metrics exposes Prometheus instruments for the HTTP layer and the
// game services.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/ports"
)

const namespace = "palpitefc"

var _ ports.GameMetrics = (*Metrics)(nil)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	attemptsStarted  *prometheus.CounterVec
	guessesEvaluated *prometheus.CounterVec
	attemptsFinished *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with reg. Pass prometheus.NewRegistry() in
// tests to avoid clashing with the default registry.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
		attemptsStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "game",
				Name:      "attempts_started_total",
				Help:      "Attempts started or resumed",
			},
			[]string{"mode", "resumed"},
		),
		guessesEvaluated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "game",
				Name:      "guesses_total",
				Help:      "Guesses evaluated, by outcome",
			},
			[]string{"mode", "outcome"},
		),
		attemptsFinished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "game",
				Name:      "attempts_finished_total",
				Help:      "Attempts that reached a terminal status",
			},
			[]string{"mode", "status"},
		),
		gatherer: reg,
	}
}

func (m *Metrics) AttemptStarted(mode domain.GameMode, resumed bool) {
	m.attemptsStarted.WithLabelValues(string(mode), strconv.FormatBool(resumed)).Inc()
}

func (m *Metrics) GuessEvaluated(mode domain.GameMode, outcome string) {
	m.guessesEvaluated.WithLabelValues(string(mode), outcome).Inc()
}

func (m *Metrics) AttemptFinished(mode domain.GameMode, status domain.AttemptStatus) {
	m.attemptsFinished.WithLabelValues(string(mode), string(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
