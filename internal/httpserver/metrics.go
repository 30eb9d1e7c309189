package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/guessnumber/internal/solver"
)

// metrics are registered per Server so tests can build several servers.
type metrics struct {
	gamesStarted   *prometheus.CounterVec
	gamesFinished  *prometheus.CounterVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	minimaxRuns    prometheus.Counter
	contradictions prometheus.Counter
	guessLatency   prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		gamesStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "guessnumber_games_started_total",
			Help: "Games started by mode (human, solver, daily)",
		}, []string{"mode"}),
		gamesFinished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "guessnumber_games_finished_total",
			Help: "Games finished by mode and outcome",
		}, []string{"mode", "state"}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "guessnumber_solver_cache_hits_total",
			Help: "Guesses served from the decision tree",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "guessnumber_solver_cache_misses_total",
			Help: "Guesses that missed the decision tree",
		}),
		minimaxRuns: f.NewCounter(prometheus.CounterOpts{
			Name: "guessnumber_solver_minimax_runs_total",
			Help: "Minimax scans over the candidate space",
		}),
		contradictions: f.NewCounter(prometheus.CounterOpts{
			Name: "guessnumber_solver_contradictions_total",
			Help: "Solver sessions ended by inconsistent feedback",
		}),
		guessLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "guessnumber_solver_guess_seconds",
			Help:    "Time to produce one solver guess",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// observeSolver adds the counter deltas between two engine snapshots.
func (m *metrics) observeSolver(before, after solver.Stats) {
	m.cacheHits.Add(float64(after.CacheHits - before.CacheHits))
	m.cacheMisses.Add(float64(after.CacheMisses - before.CacheMisses))
	m.minimaxRuns.Add(float64(after.MinimaxRuns - before.MinimaxRuns))
}
