// Package metrics exposes Prometheus collectors for scoring and search runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pointconfig/internal/scoring"
)

// Metrics groups the collectors of one process. Collectors are registered
// on the registerer passed to New, so tests can use a private registry.
type Metrics struct {
	evaluations *prometheus.CounterVec
	scores      prometheus.Histogram
	rounds      prometheus.Counter
	bestScore   *prometheus.GaugeVec
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// Labels: the stage evaluation stopped at, "done" when every gate passed
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pointconfig_evaluations_total",
			Help: "Scored words by the stage evaluation stopped at",
		}, []string{"stage"}),
		scores: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pointconfig_score",
			Help:    "Distribution of word scores",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		rounds: factory.NewCounter(prometheus.CounterOpts{
			Name: "pointconfig_search_rounds_total",
			Help: "Completed search rounds",
		}),
		bestScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pointconfig_search_best_score",
			Help: "Best score seen by the latest search round, by prime",
		}, []string{"prime"}),
	}
}

// ObserveEvaluation implements scoring.Observer.
func (m *Metrics) ObserveEvaluation(stage scoring.Stage, score int) {
	m.evaluations.WithLabelValues(stage.String()).Inc()
	m.scores.Observe(float64(score))
}

// ObserveRound records a finished search round.
func (m *Metrics) ObserveRound(prime string, best int) {
	m.rounds.Inc()
	m.bestScore.WithLabelValues(prime).Set(float64(best))
}
