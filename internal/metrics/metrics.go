// Package metrics exposes Prometheus instrumentation for rounds played over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/evilhangman/internal/game"
)

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	reg *prometheus.Registry

	roundsStarted  *prometheus.CounterVec
	roundsFinished *prometheus.CounterVec
	guesses        prometheus.Counter
	families       prometheus.Histogram
	remaining      prometheus.Histogram
}

// New registers a fresh set of collectors on their own registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		roundsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evilhangman_rounds_started_total",
				Help: "Rounds started, by mode",
			},
			[]string{"mode"},
		),
		roundsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evilhangman_rounds_finished_total",
				Help: "Rounds finished, by outcome",
			},
			[]string{"outcome"},
		),
		guesses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evilhangman_guesses_total",
			Help: "Guesses applied to rounds",
		}),
		families: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "evilhangman_guess_families",
			Help:    "Word families a guess split the candidates into",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		remaining: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "evilhangman_candidates_remaining",
			Help:    "Candidates left after a guess",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	m.reg.MustRegister(m.roundsStarted, m.roundsFinished, m.guesses, m.families, m.remaining)
	return m
}

// RoundStarted counts a new round; mode is "custom" or "daily".
func (m *Metrics) RoundStarted(mode string) {
	m.roundsStarted.WithLabelValues(mode).Inc()
}

// Guess records one applied guess and, when it ended the round, its outcome.
func (m *Metrics) Guess(out game.Outcome) {
	m.guesses.Inc()
	m.families.Observe(float64(out.Families))
	m.remaining.Observe(float64(out.Remaining))
	if out.State != game.StatePlaying {
		m.roundsFinished.WithLabelValues(string(out.State)).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
